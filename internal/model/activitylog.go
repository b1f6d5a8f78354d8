package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit entry for an item. Rows are never
// updated; they disappear only when the item is deleted.
type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	Action      string    `gorm:"not null"`
	Description string
	Timestamp   time.Time `gorm:"autoCreateTime"`

	Item Item `gorm:"foreignKey:ItemID"`
	User User `gorm:"foreignKey:UserID"`
}
