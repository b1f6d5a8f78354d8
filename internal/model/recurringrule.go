package model

import (
	"github.com/google/uuid"
)

// Recurring rule frequencies
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// RecurringRule spawns a fresh copy of its item every frequency period.
// NextTriggerDate is a local calendar date; the rule is due when it is
// today or earlier.
type RecurringRule struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Frequency       string    `gorm:"not null;check:frequency IN ('daily', 'weekly', 'monthly')"`
	NextTriggerDate LocalDate `gorm:"type:date;not null"`

	Item Item `gorm:"foreignKey:ItemID"`
}

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}
