package model

import (
	"github.com/google/uuid"
)

type SubItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ParentItemID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Description   string
	Status        string     `gorm:"not null;default:'to_do'"`
	Priority      string     `gorm:"not null;default:'medium'"`
	TimelineStart *LocalDate `gorm:"type:date"`
	TimelineEnd   *LocalDate `gorm:"type:date"`

	ParentItem Item `gorm:"foreignKey:ParentItemID"`
}

func (SubItem) TableName() string {
	return "sub_items"
}
