package repository

import (
	"context"
	"errors"

	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

// My Work filters
const (
	FilterThisWeek = "this_week"
	FilterUpcoming = "upcoming"
)

type ItemRepository struct {
	db *gorm.DB
}

type ItemRepositoryInterface interface {
	Create(ctx context.Context, item *model.Item, assigneeIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, boardID, groupID *uuid.UUID) ([]model.Item, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Item, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, assigneeIDs *[]uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	MyWork(ctx context.Context, userID uuid.UUID, filter string) ([]model.Item, error)
}

var _ ItemRepositoryInterface = (*ItemRepository)(nil)

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create adds a new item together with its assignees in one transaction
func (r *ItemRepository) Create(ctx context.Context, item *model.Item, assigneeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		for _, userID := range assigneeIDs {
			if err := tx.Exec(
				"INSERT INTO item_assignees (item_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				item.ID, userID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves an item with its assignees
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Preload("Assignees").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves items, optionally filtered by board and/or group
func (r *ItemRepository) List(ctx context.Context, boardID, groupID *uuid.UUID) ([]model.Item, error) {
	query := r.db.WithContext(ctx).Preload("Assignees")
	if boardID != nil {
		query = query.Where("board_id = ?", *boardID)
	}
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	var items []model.Item
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// GetByGroupID retrieves the items of one group with their assignees
func (r *ItemRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Preload("Assignees").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Update applies the given column updates and, when assigneeIDs is
// non-nil, replaces the assignee set, all inside one transaction so a
// failure cannot leave the item half-updated.
func (r *ItemRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, assigneeIDs *[]uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return err
			}
		}

		if assigneeIDs != nil {
			if err := replaceAssignees(tx, id, *assigneeIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an item. Assignees, activity logs, sub-items and
// recurring rules go with it via the schema's ON DELETE CASCADE.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// MyWork retrieves the items assigned to a user. The this_week filter
// keeps items whose timeline overlaps the next seven days; upcoming
// keeps items starting after that window. Items without dates always
// show up under this_week.
func (r *ItemRepository) MyWork(ctx context.Context, userID uuid.UUID, filter string) ([]model.Item, error) {
	today := dates.Today()
	weekAhead := dates.AddPeriod(today, model.FrequencyWeekly)

	query := r.db.WithContext(ctx).Preload("Assignees").
		Joins("INNER JOIN item_assignees ia ON ia.item_id = items.id").
		Where("ia.user_id = ?", userID)

	switch filter {
	case FilterThisWeek:
		query = query.
			Where("timeline_start IS NULL OR timeline_start <= ?", weekAhead).
			Where("timeline_end IS NULL OR timeline_end >= ?", today)
	case FilterUpcoming:
		query = query.Where("timeline_start IS NULL OR timeline_start > ?", weekAhead)
	}

	var items []model.Item
	err := query.Order("timeline_start ASC, created_at DESC").Find(&items).Error
	return items, err
}

// replaceAssignees swaps an item's assignee set inside the caller's
// transaction.
func replaceAssignees(tx *gorm.DB, itemID uuid.UUID, userIDs []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM item_assignees WHERE item_id = ?", itemID).Error; err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := tx.Exec(
			"INSERT INTO item_assignees (item_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			itemID, userID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
