package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GoalActive    = "active"
	GoalPaused    = "paused"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

// Goal is a behavior-change target. Progress is a percent in [0,100];
// hitting 100 forces Status to completed. UpdatedAt doubles as last_updated.
type Goal struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	Title         string `gorm:"size:100"`
	Description   string `gorm:"type:text"`
	SubstanceType string `gorm:"size:20"`
	Duration      string `gorm:"size:20"`
	Progress      int    `gorm:"default:0"`
	Status        string `gorm:"size:20;default:active"`
	Benefits      string `gorm:"type:text"` // comma-separated
	Challenge     string `gorm:"size:100"`
	StartDate     time.Time
	TargetValue   float64 `gorm:"default:100"`
	TargetUnit    string  `gorm:"size:20;default:%"`
	CurrentValue  float64
	EndDate       *time.Time
}
