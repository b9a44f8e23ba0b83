package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "unknown"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"version":     "1.0.0",
		"environment": env,
	})
}
