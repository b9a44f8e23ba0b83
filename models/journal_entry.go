package models

import (
	"time"

	"gorm.io/gorm"
)

// Substance choices shared by journal entries, consumption rows and goals.
const (
	SubstanceCannabis = "cannabis"
	SubstanceAlcohol  = "alcohol"
	SubstanceBoth     = "both"
	SubstanceNone     = "none"
	SubstanceWellness = "wellness"
)

func ValidSubstance(s string) bool {
	switch s {
	case SubstanceCannabis, SubstanceAlcohol, SubstanceBoth, SubstanceNone, SubstanceWellness:
		return true
	}
	return false
}

// JournalEntry is one dated self-report. CreatedAt is the immutable
// creation timestamp; Date is the day the entry is about.
type JournalEntry struct {
	gorm.Model
	UserID       uint      `gorm:"index:idx_journal_user_date;not null"`
	Date         time.Time `gorm:"index:idx_journal_user_date;not null"`
	Substance    string    `gorm:"size:20;index"`
	Amount       string    `gorm:"size:100"`
	Mood         int       // 1-10
	SleepQuality float64   // 1-10
	Effects      string    `gorm:"type:text"`
	Notes        string    `gorm:"type:text"`
	Tags         string    `gorm:"type:text"` // comma-separated
	SleepHours   *int      // 0-24, optional
}
