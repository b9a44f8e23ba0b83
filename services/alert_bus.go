package services

import (
	"fmt"

	"github.com/iheomach/vices-app-backend/models"

	"gorm.io/gorm"
)

type alertDeps struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, hub *RealtimeHub, push *PushService) {
	_alert = alertDeps{db: db, hub: hub, push: push}
}

// EmitAlert records a notification and fans it out to live websocket
// clients and registered push devices. Safe to call before InitAlertDeps.
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message}
	_ = _alert.db.Create(a).Error

	if _alert.hub != nil {
		_alert.hub.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.push != nil {
		_alert.push.PushToUser(userID, "Vices", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}
