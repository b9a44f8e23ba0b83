package services

import (
	"fmt"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"gorm.io/gorm"
)

// InsightService is read-only: insights are produced by an external
// generator and only ever filtered here.
type InsightService struct{ db *gorm.DB }

func NewInsightService(db *gorm.DB) *InsightService { return &InsightService{db: db} }

// base scopes to the owner and drops expired rows.
func (s *InsightService) base(userID uint) *gorm.DB {
	return s.db.
		Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at desc")
}

func (s *InsightService) List(userID uint) ([]models.AIInsight, error) {
	var insights []models.AIInsight
	err := s.base(userID).Find(&insights).Error
	return insights, err
}

// ActiveInsights returns actionable, non-expired insights, optionally
// narrowed to one type.
func (s *InsightService) ActiveInsights(userID uint, insightType string) ([]models.AIInsight, error) {
	q := s.base(userID).Where("actionable = ?", true)
	if insightType != "" {
		q = q.Where("type = ?", insightType)
	}
	var insights []models.AIInsight
	err := q.Find(&insights).Error
	return insights, err
}

// ByGoal matches on the link column, or on a goal mention in the message
// body for insights generated before the column existed.
func (s *InsightService) ByGoal(userID, goalID uint) ([]models.AIInsight, error) {
	var insights []models.AIInsight
	err := s.base(userID).
		Where("related_goal_id = ? OR message ILIKE ?", goalID, fmt.Sprintf("%%goal %d%%", goalID)).
		Find(&insights).Error
	return insights, err
}

func (s *InsightService) Recent(userID uint, days int) ([]models.AIInsight, error) {
	if days <= 0 {
		days = 7
	}
	var insights []models.AIInsight
	err := s.base(userID).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -days)).
		Find(&insights).Error
	return insights, err
}
