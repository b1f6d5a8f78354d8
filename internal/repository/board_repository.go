package repository

import (
	"context"
	"errors"

	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create adds a new board
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetAll retrieves all boards, newest first
func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// GetByID retrieves a board by its ID
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Delete removes a board. Groups, items and everything hanging off the
// items go with it via the schema's ON DELETE CASCADE.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}
