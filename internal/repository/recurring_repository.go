package repository

import (
	"context"

	"github.com/hammad535/task-manager/internal/model"

	"gorm.io/gorm"
)

type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

// Create attaches a new recurring rule to an item
func (r *RecurringRepository) Create(ctx context.Context, rule *model.RecurringRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// DueRules retrieves every rule whose trigger date is today or earlier
func (r *RecurringRepository) DueRules(ctx context.Context, today string) ([]model.RecurringRule, error) {
	var rules []model.RecurringRule
	err := r.db.WithContext(ctx).
		Where("next_trigger_date <= ?", today).
		Find(&rules).Error
	return rules, err
}
