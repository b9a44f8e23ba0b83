package models

import (
	"time"

	"gorm.io/gorm"
)

// ConsumptionStat is one dated consumption record with optional
// before/after mood for impact analysis.
type ConsumptionStat struct {
	gorm.Model
	UserID     uint      `gorm:"index:idx_consumption_user_date;not null"`
	Date       time.Time `gorm:"index:idx_consumption_user_date;not null"`
	ViceType   string    `gorm:"size:20;index"`
	Quantity   float64
	Spending   float64
	Location   string `gorm:"size:100"`
	TimeOfDay  string `gorm:"size:20"`
	MoodBefore *int   // 1-10
	MoodAfter  *int   // 1-10
	Notes      string `gorm:"type:text"`
}
