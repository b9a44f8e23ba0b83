package routes

import (
	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/controllers"
	"github.com/iheomach/vices-app-backend/middlewares"
	"github.com/iheomach/vices-app-backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub, push *services.PushService) *gin.Engine {
	r := gin.Default()

	journalCtl := controllers.NewJournalController(services.NewJournalService(config.DB))
	trackingCtl := controllers.NewTrackingController(services.NewTrackingService(config.DB))
	goalCtl := controllers.NewGoalController(services.NewGoalService(config.DB))
	insightCtl := controllers.NewInsightController(services.NewInsightService(config.DB))
	paymentCtl := controllers.NewPaymentController(services.NewSubscriptionService(config.DB))
	realtimeCtl := controllers.NewRealtimeController(hub)

	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	// Public auth routes
	users := api.Group("/users")
	{
		users.POST("/register/", controllers.Register)
		users.POST("/login/", controllers.Login)
		users.POST("/request-password-change/", controllers.RequestPasswordChange)
		users.POST("/confirm-password-change/", controllers.ConfirmPasswordChange)
	}

	// Called by the billing provider, authenticated by signature instead of JWT
	api.POST("/payments/stripe-webhook", paymentCtl.Webhook)

	authed := api.Group("")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/users/profile/", controllers.GetProfile)
		authed.PUT("/users/profile/", controllers.UpdateProfile)

		journal := authed.Group("/journal")
		{
			journal.GET("/", journalCtl.List)
			journal.POST("/", journalCtl.Create)
			journal.PUT("/:id", journalCtl.Update)
			journal.DELETE("/:id", journalCtl.Delete)
			journal.GET("/mood_trends", journalCtl.MoodTrends)
			journal.GET("/get_insights", journalCtl.GetInsights)
		}

		tracking := authed.Group("/tracking")
		{
			tracking.GET("/consumption", trackingCtl.List)
			tracking.POST("/consumption", trackingCtl.Create)
			tracking.PUT("/consumption/:id", trackingCtl.Update)
			tracking.DELETE("/consumption/:id", trackingCtl.Delete)
			tracking.GET("/consumption_analysis", trackingCtl.ConsumptionAnalysis)
			tracking.GET("/stats", trackingCtl.RetrieveStats)
		}

		goals := authed.Group("/goals")
		{
			goals.GET("/", goalCtl.List)
			goals.POST("/", goalCtl.Create)
			goals.PUT("/:id", goalCtl.Update)
			goals.DELETE("/:id", goalCtl.Delete)
			goals.GET("/active", goalCtl.Active)
			goals.GET("/completed", goalCtl.Completed)
			goals.GET("/progress_stats", goalCtl.ProgressStats)
			goals.POST("/:id/update_progress", goalCtl.UpdateProgress)
			goals.POST("/:id/complete", goalCtl.Complete)
			goals.POST("/:id/pause", goalCtl.Pause)
			goals.POST("/:id/resume", goalCtl.Resume)
		}

		insights := authed.Group("/insights")
		{
			insights.GET("/", insightCtl.List)
			insights.GET("/active_insights", insightCtl.ActiveInsights)
			insights.GET("/by_goal", insightCtl.ByGoal)
			insights.GET("/recent_insights", insightCtl.RecentInsights)
		}

		authed.POST("/payments/create-payment-intent", paymentCtl.CreatePaymentIntent)
		authed.POST("/recommendations/generate", controllers.GenerateRecommendations)

		if push != nil {
			deviceCtl := controllers.NewDeviceController(push)
			authed.POST("/devices/register", deviceCtl.Register)
		}
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", realtimeCtl.AlertsWS)
	}

	return r
}
