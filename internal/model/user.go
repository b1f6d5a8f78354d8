package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemUserID is the reserved actor for unattended mutations (the
// recurring task engine). The row is created on demand by the activity
// logger, so it needs no seed migration.
var SystemUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const (
	SystemUserName  = "System"
	SystemUserEmail = "system@taskmanager.local"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
