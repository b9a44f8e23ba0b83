package main

import (
	"os"

	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/routes"
	"github.com/iheomach/vices-app-backend/services"
	"github.com/iheomach/vices-app-backend/utils"

	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.InitLogger()
	config.InitDB()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if err := utils.InitMailer(); err != nil {
		config.Log.Warnf("mailer disabled: %v", err)
	}

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		config.Log.Warnf("push notifications disabled: %v", err)
		push = nil
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(hub, push)
	if err := r.Run(":8080"); err != nil {
		config.Log.Fatalf("server exited: %v", err)
	}
}
