// Package recurring clones items on a schedule. Each rule carries a
// frequency and a next trigger date; once that date is today or earlier
// the rule is due and a fresh copy of its item is spawned.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hammad535/task-manager/internal/activity"
	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
)

type Engine struct {
	db       *gorm.DB
	rules    *repository.RecurringRepository
	activity *activity.Logger
	now      func() time.Time
}

func NewEngine(db *gorm.DB, logger *activity.Logger) *Engine {
	return &Engine{
		db:       db,
		rules:    repository.NewRecurringRepository(db),
		activity: logger,
		now:      time.Now,
	}
}

// ProcessDueRules fires every due rule. The batch is best-effort: a rule
// that fails is logged and collected, and its siblings still fire.
// Returns the number of rules fired and the collected failures.
func (e *Engine) ProcessDueRules(ctx context.Context) (int, error) {
	today := dates.FromTime(e.now())

	rules, err := e.rules.DueRules(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("loading due rules: %w", err)
	}

	processed := 0
	var failures *multierror.Error
	for _, rule := range rules {
		if err := e.fire(ctx, rule, today); err != nil {
			log.Printf("❌ Error processing recurring rule %s: %v", rule.ID, err)
			failures = multierror.Append(failures, fmt.Errorf("rule %s: %w", rule.ID, err))
			continue
		}
		processed++
	}

	log.Printf("✅ Processed %d recurring tasks", processed)
	return processed, failures.ErrorOrNil()
}

// fire clones the rule's item and reschedules the rule, all in one
// transaction; partial state (a clone without its assignees) cannot
// survive a failure. The activity entry is written afterwards,
// best-effort, outside the transaction.
func (e *Engine) fire(ctx context.Context, rule model.RecurringRule, today string) error {
	var cloneID uuid.UUID

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source model.Item
		if err := tx.First(&source, "id = ?", rule.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("source item %s not found", rule.ItemID)
			}
			return err
		}

		clone := model.Item{
			ID:            uuid.New(),
			GroupID:       source.GroupID,
			BoardID:       source.BoardID,
			Title:         source.Title,
			Description:   source.Description,
			Status:        model.StatusToDo,
			Priority:      source.Priority,
			TimelineStart: shiftDate(source.TimelineStart, rule.Frequency),
			TimelineEnd:   shiftDate(source.TimelineEnd, rule.Frequency),
		}
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
		cloneID = clone.ID

		// Copy, not move: the source keeps its assignees too.
		if err := tx.Exec(
			"INSERT INTO item_assignees (item_id, user_id) SELECT ?, user_id FROM item_assignees WHERE item_id = ?",
			clone.ID, source.ID,
		).Error; err != nil {
			return err
		}

		next := dates.AddPeriod(today, rule.Frequency)

		newRule := model.RecurringRule{
			ID:              uuid.New(),
			ItemID:          clone.ID,
			Frequency:       rule.Frequency,
			NextTriggerDate: model.LocalDate(next),
		}
		if err := tx.Create(&newRule).Error; err != nil {
			return err
		}

		// Resync the original rule from today, not from the missed
		// trigger date: a long outage yields one catch-up firing, not N.
		return tx.Exec(
			"UPDATE recurring_rules SET next_trigger_date = ? WHERE id = ?",
			next, rule.ID,
		).Error
	})
	if err != nil {
		return err
	}

	e.activity.Log(ctx, cloneID, model.SystemUserID, "recurring_created",
		fmt.Sprintf("Recurring task created from rule: %s", rule.Frequency))
	return nil
}

// shiftDate moves a nullable timeline date forward by one period. A
// date that cannot be parsed is carried over unshifted, matching the
// unrecognized-frequency fallback on the rule side.
func shiftDate(date *model.LocalDate, frequency string) *model.LocalDate {
	if date == nil {
		return nil
	}
	shifted := dates.AddPeriod(date.String(), frequency)
	if shifted == "" {
		return date
	}
	result := model.LocalDate(shifted)
	return &result
}
