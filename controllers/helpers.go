package controllers

import (
	"errors"
	"strconv"

	"github.com/iheomach/vices-app-backend/services"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

// timeframeDays reads ?timeframe=<days>, defaulting to 30.
func timeframeDays(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("timeframe", "30")
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errors.New("timeframe must be a positive number of days")
	}
	return days, nil
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// storeErrStatus maps service errors to the 4xx/5xx taxonomy.
func storeErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return 404
	case errors.Is(err, services.ErrBadDateFilter):
		return 400
	default:
		return 500
	}
}
