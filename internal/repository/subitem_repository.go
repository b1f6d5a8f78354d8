package repository

import (
	"context"
	"errors"

	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubItemRepository struct {
	db *gorm.DB
}

type SubItemRepositoryInterface interface {
	Create(ctx context.Context, subItem *model.SubItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SubItem, error)
	GetByParentID(ctx context.Context, parentItemID uuid.UUID) ([]model.SubItem, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ SubItemRepositoryInterface = (*SubItemRepository)(nil)

func NewSubItemRepository(db *gorm.DB) *SubItemRepository {
	return &SubItemRepository{db: db}
}

func (r *SubItemRepository) Create(ctx context.Context, subItem *model.SubItem) error {
	return r.db.WithContext(ctx).Create(subItem).Error
}

func (r *SubItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SubItem, error) {
	var subItem model.SubItem
	err := r.db.WithContext(ctx).First(&subItem, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subItem, nil
}

func (r *SubItemRepository) GetByParentID(ctx context.Context, parentItemID uuid.UUID) ([]model.SubItem, error) {
	var subItems []model.SubItem
	err := r.db.WithContext(ctx).
		Where("parent_item_id = ?", parentItemID).
		Order("title").
		Find(&subItems).Error
	return subItems, err
}

// Update applies the given column updates to a sub-item
func (r *SubItemRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.SubItem{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubItemNotFound
	}
	return nil
}

func (r *SubItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SubItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubItemNotFound
	}
	return nil
}
