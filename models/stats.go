package models

import "gorm.io/gorm"

// Stats is the per-user rolling summary, at most one row per user.
// UpdatedAt doubles as the last-calculated timestamp.
type Stats struct {
	gorm.Model
	UserID           uint `gorm:"uniqueIndex;not null"`
	MindfulDays      int
	SleepQuality     float64
	SleepImprovement float64
	MoodAverage      float64
	MoodTrend        string `gorm:"size:20;default:stable"` // improving | declining | stable
}
