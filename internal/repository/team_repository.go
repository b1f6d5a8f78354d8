package repository

import (
	"context"
	"errors"

	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create adds a new team with its initial members in one transaction
func (r *TeamRepository) Create(ctx context.Context, team *model.Team, memberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return insertMembers(tx, team.ID, memberIDs)
	})
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).Preload("Members").Order("created_at DESC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).Preload("Members").First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update renames the team and/or replaces its member set, atomically
func (r *TeamRepository) Update(ctx context.Context, id uuid.UUID, name *string, memberIDs *[]uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team model.Team
		if err := tx.First(&team, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		if name != nil {
			if err := tx.Model(&team).Update("name", *name).Error; err != nil {
				return err
			}
		}

		if memberIDs != nil {
			if err := tx.Exec("DELETE FROM team_members WHERE team_id = ?", id).Error; err != nil {
				return err
			}
			if err := insertMembers(tx, id, *memberIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AssignToItem replaces an item's assignees with the team's current
// members, in one transaction.
func (r *TeamRepository) AssignToItem(ctx context.Context, itemID, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Team{}).Where("id = ?", teamID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTeamNotFound
		}

		if err := tx.Exec("DELETE FROM item_assignees WHERE item_id = ?", itemID).Error; err != nil {
			return err
		}
		return tx.Exec(
			"INSERT INTO item_assignees (item_id, user_id) SELECT ?, user_id FROM team_members WHERE team_id = ?",
			itemID, teamID,
		).Error
	})
}

func insertMembers(tx *gorm.DB, teamID uuid.UUID, memberIDs []uuid.UUID) error {
	for _, userID := range memberIDs {
		if err := tx.Exec(
			"INSERT INTO team_members (team_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			teamID, userID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
