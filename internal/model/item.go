package model

import (
	"time"

	"github.com/google/uuid"
)

// Item statuses
const (
	StatusToDo       = "to_do"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusStuck      = "stuck"
)

// Item priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Item is a task on a board. Timeline dates are stored as local calendar
// dates (YYYY-MM-DD), never as instants, to avoid timezone drift.
type Item struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GroupID       uuid.UUID `gorm:"type:uuid;not null;index"`
	BoardID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Description   string
	Status        string     `gorm:"not null;default:'to_do'"`
	Priority      string     `gorm:"not null;default:'medium'"`
	TimelineStart *LocalDate `gorm:"type:date"`
	TimelineEnd   *LocalDate `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Group     Group  `gorm:"foreignKey:GroupID"`
	Board     Board  `gorm:"foreignKey:BoardID"`
	Assignees []User `gorm:"many2many:item_assignees"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusStuck:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
