package model

import (
	"github.com/google/uuid"
)

// Group is a bucket of items inside a board (the board's rows/sections).
type Group struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"not null"`

	Board Board `gorm:"foreignKey:BoardID"`
}

func (Group) TableName() string {
	return "board_groups"
}
