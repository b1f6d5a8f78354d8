package repository

import (
	"context"

	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ListByItem retrieves an item's audit trail, newest first
func (r *ActivityRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).Preload("User").
		Where("item_id = ?", itemID).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, err
}
