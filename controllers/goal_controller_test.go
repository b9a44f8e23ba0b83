package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/iheomach/vices-app-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestGoalTransitionReportsStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewGoalController(services.NewGoalService(db))

	mock.ExpectQuery(`SELECT \* FROM "goals"`).
		WillReturnError(errors.New("connection reset by peer"))

	c, w := testCtx(t, http.MethodPost, "/api/goals/5/pause", "5")
	ctl.Pause(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection reset")
	assert.NotContains(t, w.Body.String(), "not found")
}

func TestGoalTransitionMissingGoalIs404(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewGoalController(services.NewGoalService(db))

	mock.ExpectQuery(`SELECT \* FROM "goals"`).
		WillReturnRows(mock.NewRows([]string{"id"}))

	c, w := testCtx(t, http.MethodPost, "/api/goals/5/pause", "5")
	ctl.Pause(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "goal not found")
}
