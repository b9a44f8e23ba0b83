package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string `gorm:"size:30"`
	LastName  string `gorm:"size:30"`
	Phone     string `gorm:"size:17"`

	// Location
	City       string `gorm:"size:100"`
	Province   string `gorm:"size:50"`
	PostalCode string `gorm:"size:10"`
	Latitude   *float64
	Longitude  *float64

	// Consumption preferences, comma-separated (e.g. "cannabis,wine,beer")
	PreferredCategories string `gorm:"type:text"`
	ToleranceLevel      string `gorm:"size:20"`
	FavoriteEffects     string `gorm:"type:text"`
	ConsumptionGoals    string `gorm:"type:text"`

	ReceiveDealNotifications bool   `gorm:"default:true"`
	AccountTier              string `gorm:"size:20;default:free"`

	IsVerified  bool
	DateOfBirth *time.Time

	ResetToken    string
	ResetTokenExp time.Time
}
