package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"
)

// SubscriptionService mirrors the billing provider's subscription state
// onto User.AccountTier. It is driven entirely by inbound webhook events.
type SubscriptionService struct{ db *gorm.DB }

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

var ErrBadSignature = errors.New("invalid webhook signature")

// TierForEvent maps a billing event type to the resulting account tier.
// Events that do not change tier return ok=false.
func TierForEvent(eventType string) (tier string, ok bool) {
	switch eventType {
	case "payment_intent.succeeded", "invoice.payment_succeeded", "checkout.session.completed":
		return models.TierPremium, true
	case "customer.subscription.deleted":
		return models.TierFree, true
	}
	return "", false
}

// VerifyAndProcess authenticates the raw payload against the shared
// webhook secret before trusting anything in it. A bad signature is an
// error with no state change.
func (s *SubscriptionService) VerifyAndProcess(payload []byte, sigHeader, secret string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return s.ProcessEvent(event)
}

// ProcessEvent applies one authenticated billing event. Replays are
// detected via the webhook_events ledger and acknowledged without
// re-running side effects.
func (s *SubscriptionService) ProcessEvent(event stripe.Event) error {
	var seen models.WebhookEvent
	err := s.db.Where("event_id = ?", event.ID).First(&seen).Error
	if err == nil {
		return nil // already applied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.apply(event); err != nil {
		return err
	}

	return s.db.Create(&models.WebhookEvent{
		EventID: event.ID,
		Type:    string(event.Type),
	}).Error
}

func (s *SubscriptionService) apply(event stripe.Event) error {
	userID, ok := eventUserID(event)
	if !ok {
		if config.Log != nil {
			config.Log.Warnf("billing event %s (%s) carries no user_id metadata, skipping", event.ID, event.Type)
		}
		return nil
	}

	if string(event.Type) == "invoice.payment_failed" {
		// Grace period: a single failed payment warns but does not
		// downgrade; the provider emits customer.subscription.deleted
		// once its retry schedule is exhausted.
		EmitAlert(userID, "warning", "A subscription payment failed. Please update your payment method.")
		return nil
	}

	tier, ok := TierForEvent(string(event.Type))
	if !ok {
		return nil
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if config.Log != nil {
				config.Log.Warnf("billing event %s references unknown user %d", event.ID, userID)
			}
			return nil
		}
		return err
	}

	if user.AccountTier == tier {
		return nil // setting the same tier twice is a no-op
	}

	user.AccountTier = tier
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if tier == models.TierPremium {
		EmitAlert(user.ID, "info", "Your premium subscription is now active.")
	} else {
		EmitAlert(user.ID, "info", "Your subscription has ended. Your account is back on the free tier.")
	}
	return nil
}

func eventUserID(event stripe.Event) (uint, bool) {
	obj := event.Data.Object
	meta, _ := obj["metadata"].(map[string]interface{})
	raw, _ := meta["user_id"].(string)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
