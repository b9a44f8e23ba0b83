package models

import "time"

// WebhookEvent records every billing event we have already applied, so a
// redelivered event is acknowledged without re-running side effects.
type WebhookEvent struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"uniqueIndex;size:255;not null"`
	Type      string `gorm:"size:64"`
	CreatedAt time.Time
}
