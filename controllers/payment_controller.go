package controllers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/iheomach/vices-app-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type PaymentController struct {
	Subs *services.SubscriptionService
}

func NewPaymentController(subs *services.SubscriptionService) *PaymentController {
	return &PaymentController{Subs: subs}
}

type PaymentIntentInput struct {
	Amount   int64  `json:"amount" binding:"required"` // cents
	Currency string `json:"currency"`
}

func (h *PaymentController) CreatePaymentIntent(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input PaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client_secret": intent.ClientSecret})
}

// Webhook is called by the billing provider, not by end users. The
// payload is only trusted after signature verification.
func (h *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	if err := h.Subs.VerifyAndProcess(payload, sigHeader, secret); err != nil {
		if errors.Is(err, services.ErrBadSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
