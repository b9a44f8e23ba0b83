package models

import (
	"time"

	"gorm.io/gorm"
)

// AIInsight is an advisory message produced by an external generator.
// The API never creates or mutates these; expired rows are filtered out
// of every read.
type AIInsight struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	Type          string `gorm:"size:20"` // pattern | health | achievement | optimization | trend
	Title         string `gorm:"size:100"`
	Message       string `gorm:"type:text"`
	Severity      string `gorm:"size:20"` // info | warning | success | tip
	Actionable    bool   `gorm:"default:false"`
	ExpiresAt     *time.Time
	RelatedGoalID *uint `gorm:"index"`
}
