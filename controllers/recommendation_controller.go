package controllers

import (
	"net/http"

	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/services"

	"github.com/gin-gonic/gin"
)

func GenerateRecommendations(c *gin.Context) {
	var req services.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	recSvc := services.NewRecService()
	result, err := recSvc.Generate(&req)
	if err != nil {
		if config.Log != nil {
			config.Log.Errorf("completion API error: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
