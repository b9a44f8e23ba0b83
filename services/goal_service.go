package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"gorm.io/gorm"
)

type GoalService struct{ db *gorm.DB }

func NewGoalService(db *gorm.DB) *GoalService { return &GoalService{db: db} }

type GoalInput struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	SubstanceType string   `json:"substance_type" binding:"required"`
	Duration      string   `json:"duration"`
	Benefits      []string `json:"benefits"`
	Challenge     string   `json:"challenge"`
	TargetValue   *float64 `json:"target_value"`
	TargetUnit    string   `json:"target_unit"`
	EndDate       *string  `json:"end_date"` // YYYY-MM-DD
}

func (s *GoalService) Create(userID uint, in *GoalInput) (*models.Goal, error) {
	if !models.ValidSubstance(in.SubstanceType) {
		return nil, fmt.Errorf("invalid substance_type %q", in.SubstanceType)
	}
	goal := &models.Goal{
		UserID:        userID,
		Title:         in.Title,
		Description:   in.Description,
		SubstanceType: in.SubstanceType,
		Duration:      in.Duration,
		Status:        models.GoalActive,
		Benefits:      strings.Join(in.Benefits, ","),
		Challenge:     in.Challenge,
		StartDate:     time.Now(),
		TargetValue:   100,
		TargetUnit:    "%",
	}
	if in.TargetValue != nil {
		goal.TargetValue = *in.TargetValue
	}
	if in.TargetUnit != "" {
		goal.TargetUnit = in.TargetUnit
	}
	if in.EndDate != nil {
		d, err := time.Parse("2006-01-02", *in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		goal.EndDate = &d
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func validGoalStatus(s string) bool {
	switch s {
	case models.GoalActive, models.GoalPaused, models.GoalCompleted, models.GoalAbandoned:
		return true
	}
	return false
}

// GoalUpdateInput edits a goal in place; only supplied fields change.
type GoalUpdateInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SubstanceType string   `json:"substance_type"`
	Duration      string   `json:"duration"`
	Benefits      []string `json:"benefits"`
	Challenge     string   `json:"challenge"`
	Status        string   `json:"status"`
	Progress      *int     `json:"progress"`
	TargetValue   *float64 `json:"target_value"`
	TargetUnit    string   `json:"target_unit"`
	CurrentValue  *float64 `json:"current_value"`
	EndDate       *string  `json:"end_date"` // YYYY-MM-DD
}

func (s *GoalService) Update(id, userID uint, in *GoalUpdateInput) (*models.Goal, error) {
	goal, err := s.get(id, userID)
	if err != nil {
		return nil, err
	}

	if in.SubstanceType != "" {
		if !models.ValidSubstance(in.SubstanceType) {
			return nil, fmt.Errorf("invalid substance_type %q", in.SubstanceType)
		}
		goal.SubstanceType = in.SubstanceType
	}
	if in.Status != "" {
		if !validGoalStatus(in.Status) {
			return nil, fmt.Errorf("invalid status %q", in.Status)
		}
		goal.Status = in.Status
	}
	// Progress goes through ApplyProgress after any status edit so that
	// progress=100 still forces completed.
	if in.Progress != nil {
		if err := ApplyProgress(goal, *in.Progress); err != nil {
			return nil, err
		}
	}
	if in.Title != "" {
		goal.Title = in.Title
	}
	if in.Description != "" {
		goal.Description = in.Description
	}
	if in.Duration != "" {
		goal.Duration = in.Duration
	}
	if in.Challenge != "" {
		goal.Challenge = in.Challenge
	}
	if in.Benefits != nil {
		goal.Benefits = strings.Join(in.Benefits, ",")
	}
	if in.TargetValue != nil {
		goal.TargetValue = *in.TargetValue
	}
	if in.TargetUnit != "" {
		goal.TargetUnit = in.TargetUnit
	}
	if in.CurrentValue != nil {
		goal.CurrentValue = *in.CurrentValue
	}
	if in.EndDate != nil {
		d, err := time.Parse("2006-01-02", *in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		goal.EndDate = &d
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(id, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GoalFilters struct {
	Status        string
	SubstanceType string
}

func (s *GoalService) List(userID uint, f GoalFilters) ([]models.Goal, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SubstanceType != "" {
		q = q.Where("substance_type = ?", f.SubstanceType)
	}
	var goals []models.Goal
	err := q.Order("start_date desc").Find(&goals).Error
	return goals, err
}

func (s *GoalService) get(id, userID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ApplyProgress sets Progress and, iff it reaches 100, forces the goal to
// completed. Out-of-range values leave the goal untouched.
func ApplyProgress(goal *models.Goal, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	goal.Progress = progress
	if progress == 100 {
		goal.Status = models.GoalCompleted
	}
	return nil
}

func (s *GoalService) SetProgress(id, userID uint, progress int) (*models.Goal, error) {
	goal, err := s.get(id, userID)
	if err != nil {
		return nil, err
	}
	if err := ApplyProgress(goal, progress); err != nil {
		return nil, err
	}
	if err := s.db.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// Complete short-circuits to progress=100/completed regardless of prior status.
func (s *GoalService) Complete(id, userID uint) (*models.Goal, error) {
	return s.transition(id, userID, func(g *models.Goal) {
		g.Progress = 100
		g.Status = models.GoalCompleted
	})
}

func (s *GoalService) Pause(id, userID uint) (*models.Goal, error) {
	return s.transition(id, userID, func(g *models.Goal) { g.Status = models.GoalPaused })
}

func (s *GoalService) Resume(id, userID uint) (*models.Goal, error) {
	return s.transition(id, userID, func(g *models.Goal) { g.Status = models.GoalActive })
}

func (s *GoalService) transition(id, userID uint, mutate func(*models.Goal)) (*models.Goal, error) {
	goal, err := s.get(id, userID)
	if err != nil {
		return nil, err
	}
	mutate(goal)
	if err := s.db.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// ---------- Progress stats ----------

type GoalTypeStats struct {
	SubstanceType string  `json:"substance_type"`
	Count         int     `json:"count"`
	Completed     int     `json:"completed"`
	AvgProgress   float64 `json:"avg_progress"`
}

type ProgressStats struct {
	TotalGoals      int             `json:"total_goals"`
	CompletedGoals  int             `json:"completed_goals"`
	ActiveGoals     int             `json:"active_goals"`
	PausedGoals     int             `json:"paused_goals"`
	AbandonedGoals  int             `json:"abandoned_goals"`
	AverageProgress float64         `json:"average_progress"` // active goals only
	ByType          []GoalTypeStats `json:"by_type"`
}

func (s *GoalService) ProgressStats(userID uint, days int) (*ProgressStats, error) {
	var goals []models.Goal
	if err := s.db.
		Where("user_id = ? AND start_date >= ?", userID, windowStart(days)).
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return computeProgressStats(goals), nil
}

func computeProgressStats(goals []models.Goal) *ProgressStats {
	out := &ProgressStats{ByType: []GoalTypeStats{}}

	type acc struct {
		count, completed int
		progressSum      float64
	}
	byType := map[string]*acc{}
	var order []string

	var activeProgressSum float64
	for _, g := range goals {
		out.TotalGoals++
		switch g.Status {
		case models.GoalCompleted:
			out.CompletedGoals++
		case models.GoalActive:
			out.ActiveGoals++
			activeProgressSum += float64(g.Progress)
		case models.GoalPaused:
			out.PausedGoals++
		case models.GoalAbandoned:
			out.AbandonedGoals++
		}

		a := byType[g.SubstanceType]
		if a == nil {
			a = &acc{}
			byType[g.SubstanceType] = a
			order = append(order, g.SubstanceType)
		}
		a.count++
		a.progressSum += float64(g.Progress)
		if g.Status == models.GoalCompleted {
			a.completed++
		}
	}

	if out.ActiveGoals > 0 {
		out.AverageProgress = round2(activeProgressSum / float64(out.ActiveGoals))
	}
	for _, st := range order {
		a := byType[st]
		out.ByType = append(out.ByType, GoalTypeStats{
			SubstanceType: st,
			Count:         a.count,
			Completed:     a.completed,
			AvgProgress:   round2(a.progressSum / float64(a.count)),
		})
	}
	return out
}

