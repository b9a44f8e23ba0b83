package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrBadDateFilter = errors.New("date filters must be YYYY-MM-DD")
)

type JournalService struct{ db *gorm.DB }

func NewJournalService(db *gorm.DB) *JournalService { return &JournalService{db: db} }

type JournalEntryInput struct {
	Date         string   `json:"date" binding:"required"` // YYYY-MM-DD
	Substance    string   `json:"substance" binding:"required"`
	Amount       string   `json:"amount"`
	Mood         int      `json:"mood" binding:"required"`
	SleepQuality float64  `json:"sleep_quality" binding:"required"`
	Effects      string   `json:"effects"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
	SleepHours   *int     `json:"sleep"`
}

func ValidateEntryInput(in *JournalEntryInput) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if !models.ValidSubstance(in.Substance) {
		return fmt.Errorf("invalid substance %q", in.Substance)
	}
	if in.Mood < 1 || in.Mood > 10 {
		return fmt.Errorf("mood must be between 1 and 10")
	}
	if in.SleepQuality < 1 || in.SleepQuality > 10 {
		return fmt.Errorf("sleep_quality must be between 1 and 10")
	}
	if in.SleepHours != nil && (*in.SleepHours < 0 || *in.SleepHours > 24) {
		return fmt.Errorf("sleep must be between 0 and 24")
	}
	return nil
}

func (s *JournalService) Create(userID uint, in *JournalEntryInput) (*models.JournalEntry, error) {
	if err := ValidateEntryInput(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse("2006-01-02", in.Date)
	entry := &models.JournalEntry{
		UserID:       userID,
		Date:         date,
		Substance:    in.Substance,
		Amount:       in.Amount,
		Mood:         in.Mood,
		SleepQuality: in.SleepQuality,
		Effects:      in.Effects,
		Notes:        in.Notes,
		Tags:         strings.Join(in.Tags, ","),
		SleepHours:   in.SleepHours,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

type JournalFilters struct {
	StartDate string
	EndDate   string
	Substance string
}

// List returns only the caller's entries, most recent first.
func (s *JournalService) List(userID uint, f JournalFilters) ([]models.JournalEntry, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.StartDate != "" {
		d, err := time.Parse("2006-01-02", f.StartDate)
		if err != nil {
			return nil, ErrBadDateFilter
		}
		q = q.Where("date >= ?", d)
	}
	if f.EndDate != "" {
		d, err := time.Parse("2006-01-02", f.EndDate)
		if err != nil {
			return nil, ErrBadDateFilter
		}
		q = q.Where("date <= ?", d)
	}
	if f.Substance != "" {
		q = q.Where("substance = ?", f.Substance)
	}

	var entries []models.JournalEntry
	err := q.Order("date desc, created_at desc").Find(&entries).Error
	return entries, err
}

func (s *JournalService) Update(id, userID uint, in *JournalEntryInput) (*models.JournalEntry, error) {
	if err := ValidateEntryInput(in); err != nil {
		return nil, err
	}
	var entry models.JournalEntry
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", in.Date)
	entry.Date = date
	entry.Substance = in.Substance
	entry.Amount = in.Amount
	entry.Mood = in.Mood
	entry.SleepQuality = in.SleepQuality
	entry.Effects = in.Effects
	entry.Notes = in.Notes
	entry.Tags = strings.Join(in.Tags, ",")
	entry.SleepHours = in.SleepHours

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *JournalService) Delete(id, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *JournalService) entriesInWindow(userID uint, days int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, windowStart(days)).
		Order("date asc").
		Find(&entries).Error
	return entries, err
}

// ---------- Mood trends ----------

type SubstanceMood struct {
	Substance string  `json:"substance"`
	AvgMood   float64 `json:"avg_mood"`
	Count     int     `json:"count"`
}

type MoodTrends struct {
	OverallMood     float64         `json:"overall_mood"`
	SleepQuality    float64         `json:"sleep_quality"`
	MoodBySubstance []SubstanceMood `json:"mood_by_substance"`
}

func (s *JournalService) MoodTrends(userID uint, days int) (*MoodTrends, error) {
	entries, err := s.entriesInWindow(userID, days)
	if err != nil {
		return nil, err
	}
	return computeMoodTrends(entries), nil
}

func computeMoodTrends(entries []models.JournalEntry) *MoodTrends {
	out := &MoodTrends{MoodBySubstance: []SubstanceMood{}}
	if len(entries) == 0 {
		return out
	}

	var moodSum, sleepSum float64
	type acc struct {
		sum   float64
		count int
	}
	bySubstance := map[string]*acc{}
	var order []string

	for _, e := range entries {
		moodSum += float64(e.Mood)
		sleepSum += e.SleepQuality
		a := bySubstance[e.Substance]
		if a == nil {
			a = &acc{}
			bySubstance[e.Substance] = a
			order = append(order, e.Substance)
		}
		a.sum += float64(e.Mood)
		a.count++
	}

	n := float64(len(entries))
	out.OverallMood = round2(moodSum / n)
	out.SleepQuality = round2(sleepSum / n)
	for _, sub := range order {
		a := bySubstance[sub]
		out.MoodBySubstance = append(out.MoodBySubstance, SubstanceMood{
			Substance: sub,
			AvgMood:   round2(a.sum / float64(a.count)),
			Count:     a.count,
		})
	}
	return out
}

// ---------- Insights ----------

type SubstanceCount struct {
	Substance string `json:"substance"`
	Count     int    `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type JournalInsights struct {
	TotalEntries       int              `json:"total_entries"`
	SubstanceBreakdown []SubstanceCount `json:"substance_breakdown"`
	AvgMood            float64          `json:"avg_mood"`
	AvgSleepQuality    float64          `json:"avg_sleep_quality"`
	CommonTags         []TagCount       `json:"common_tags"`
}

func (s *JournalService) Insights(userID uint, days int) (*JournalInsights, error) {
	entries, err := s.entriesInWindow(userID, days)
	if err != nil {
		return nil, err
	}
	return computeJournalInsights(entries), nil
}

func computeJournalInsights(entries []models.JournalEntry) *JournalInsights {
	out := &JournalInsights{
		SubstanceBreakdown: []SubstanceCount{},
		CommonTags:         []TagCount{},
	}
	if len(entries) == 0 {
		return out
	}

	out.TotalEntries = len(entries)

	var moodSum, sleepSum float64
	substanceCounts := map[string]int{}
	var substanceOrder []string
	tagCounts := map[string]int{}
	var tagOrder []string

	for _, e := range entries {
		moodSum += float64(e.Mood)
		sleepSum += e.SleepQuality
		if _, seen := substanceCounts[e.Substance]; !seen {
			substanceOrder = append(substanceOrder, e.Substance)
		}
		substanceCounts[e.Substance]++
		for _, tag := range splitTags(e.Tags) {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	n := float64(len(entries))
	out.AvgMood = round2(moodSum / n)
	out.AvgSleepQuality = round2(sleepSum / n)

	for _, sub := range substanceOrder {
		out.SubstanceBreakdown = append(out.SubstanceBreakdown, SubstanceCount{Substance: sub, Count: substanceCounts[sub]})
	}
	out.CommonTags = topTags(tagOrder, tagCounts, 5)
	return out
}

// topTags ranks by count desc; ties keep first-seen order within the window.
func topTags(order []string, counts map[string]int, n int) []TagCount {
	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// windowStart is the day boundary "days ago", inclusive.
func windowStart(days int) time.Time {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.AddDate(0, 0, -days)
}
