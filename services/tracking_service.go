package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"gorm.io/gorm"
)

type TrackingService struct{ db *gorm.DB }

func NewTrackingService(db *gorm.DB) *TrackingService { return &TrackingService{db: db} }

type ConsumptionInput struct {
	Date       string  `json:"date" binding:"required"` // YYYY-MM-DD
	ViceType   string  `json:"vice_type" binding:"required"`
	Quantity   float64 `json:"quantity"`
	Spending   float64 `json:"spending"`
	Location   string  `json:"location"`
	TimeOfDay  string  `json:"time_of_day"`
	MoodBefore *int    `json:"mood_before"`
	MoodAfter  *int    `json:"mood_after"`
	Notes      string  `json:"notes"`
}

func ValidateConsumptionInput(in *ConsumptionInput) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if !models.ValidSubstance(in.ViceType) {
		return fmt.Errorf("invalid vice_type %q", in.ViceType)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if in.Spending < 0 {
		return fmt.Errorf("spending must not be negative")
	}
	for name, m := range map[string]*int{"mood_before": in.MoodBefore, "mood_after": in.MoodAfter} {
		if m != nil && (*m < 1 || *m > 10) {
			return fmt.Errorf("%s must be between 1 and 10", name)
		}
	}
	return nil
}

func (s *TrackingService) Create(userID uint, in *ConsumptionInput) (*models.ConsumptionStat, error) {
	if err := ValidateConsumptionInput(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse("2006-01-02", in.Date)
	row := &models.ConsumptionStat{
		UserID:     userID,
		Date:       date,
		ViceType:   in.ViceType,
		Quantity:   in.Quantity,
		Spending:   in.Spending,
		Location:   in.Location,
		TimeOfDay:  in.TimeOfDay,
		MoodBefore: in.MoodBefore,
		MoodAfter:  in.MoodAfter,
		Notes:      in.Notes,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

type ConsumptionFilters struct {
	StartDate string
	EndDate   string
	ViceType  string
}

func (s *TrackingService) List(userID uint, f ConsumptionFilters) ([]models.ConsumptionStat, error) {
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
	if f.ViceType != "" {
		q = q.Where("vice_type = ?", f.ViceType)
	}

	var rows []models.ConsumptionStat
	err := q.Order("date desc, created_at desc").Find(&rows).Error
	return rows, err
}

func (s *TrackingService) Update(id, userID uint, in *ConsumptionInput) (*models.ConsumptionStat, error) {
	if err := ValidateConsumptionInput(in); err != nil {
		return nil, err
	}
	var row models.ConsumptionStat
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", in.Date)
	row.Date = date
	row.ViceType = in.ViceType
	row.Quantity = in.Quantity
	row.Spending = in.Spending
	row.Location = in.Location
	row.TimeOfDay = in.TimeOfDay
	row.MoodBefore = in.MoodBefore
	row.MoodAfter = in.MoodAfter
	row.Notes = in.Notes

	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *TrackingService) Delete(id, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ConsumptionStat{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- Consumption analysis ----------

type ViceTypeAnalysis struct {
	ViceType      string   `json:"vice_type"`
	TotalQuantity float64  `json:"total_quantity"`
	TotalSpending float64  `json:"total_spending"`
	Count         int      `json:"count"`
	AvgMoodImpact *float64 `json:"avg_mood_impact"` // mean(after) - mean(before); nil without before/after pairs
}

type TimeOfDayStat struct {
	TimeOfDay   string  `json:"time_of_day"`
	Count       int     `json:"count"`
	AvgSpending float64 `json:"avg_spending"`
}

type LocationStat struct {
	Location    string  `json:"location"`
	Count       int     `json:"count"`
	AvgSpending float64 `json:"avg_spending"`
}

type ConsumptionAnalysis struct {
	TotalSpending      float64            `json:"total_spending"`
	ConsumptionByType  []ViceTypeAnalysis `json:"consumption_by_type"`
	TimeOfDayBreakdown []TimeOfDayStat    `json:"time_of_day_breakdown"`
	LocationAnalysis   []LocationStat     `json:"location_analysis"` // top 5 by count
}

func (s *TrackingService) ConsumptionAnalysis(userID uint, days int) (*ConsumptionAnalysis, error) {
	var rows []models.ConsumptionStat
	if err := s.db.
		Where("user_id = ? AND date >= ?", userID, windowStart(days)).
		Order("date asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return computeConsumptionAnalysis(rows), nil
}

// computeConsumptionAnalysis reduces one fetched row set into every metric;
// no per-metric re-query.
func computeConsumptionAnalysis(rows []models.ConsumptionStat) *ConsumptionAnalysis {
	out := &ConsumptionAnalysis{
		ConsumptionByType:  []ViceTypeAnalysis{},
		TimeOfDayBreakdown: []TimeOfDayStat{},
		LocationAnalysis:   []LocationStat{},
	}

	type typeAcc struct {
		quantity, spending       float64
		count                    int
		beforeSum, afterSum      float64
		beforeCount, afterCount  int
	}
	type spendAcc struct {
		spending float64
		count    int
	}

	byType := map[string]*typeAcc{}
	var typeOrder []string
	byTime := map[string]*spendAcc{}
	var timeOrder []string
	byLocation := map[string]*spendAcc{}
	var locationOrder []string

	for _, r := range rows {
		out.TotalSpending += r.Spending

		t := byType[r.ViceType]
		if t == nil {
			t = &typeAcc{}
			byType[r.ViceType] = t
			typeOrder = append(typeOrder, r.ViceType)
		}
		t.quantity += r.Quantity
		t.spending += r.Spending
		t.count++
		if r.MoodBefore != nil {
			t.beforeSum += float64(*r.MoodBefore)
			t.beforeCount++
		}
		if r.MoodAfter != nil {
			t.afterSum += float64(*r.MoodAfter)
			t.afterCount++
		}

		tod := byTime[r.TimeOfDay]
		if tod == nil {
			tod = &spendAcc{}
			byTime[r.TimeOfDay] = tod
			timeOrder = append(timeOrder, r.TimeOfDay)
		}
		tod.spending += r.Spending
		tod.count++

		loc := byLocation[r.Location]
		if loc == nil {
			loc = &spendAcc{}
			byLocation[r.Location] = loc
			locationOrder = append(locationOrder, r.Location)
		}
		loc.spending += r.Spending
		loc.count++
	}

	out.TotalSpending = round2(out.TotalSpending)

	for _, vt := range typeOrder {
		t := byType[vt]
		entry := ViceTypeAnalysis{
			ViceType:      vt,
			TotalQuantity: round2(t.quantity),
			TotalSpending: round2(t.spending),
			Count:         t.count,
		}
		if t.beforeCount > 0 && t.afterCount > 0 {
			impact := round2(t.afterSum/float64(t.afterCount) - t.beforeSum/float64(t.beforeCount))
			entry.AvgMoodImpact = &impact
		}
		out.ConsumptionByType = append(out.ConsumptionByType, entry)
	}

	for _, tod := range timeOrder {
		a := byTime[tod]
		out.TimeOfDayBreakdown = append(out.TimeOfDayBreakdown, TimeOfDayStat{
			TimeOfDay:   tod,
			Count:       a.count,
			AvgSpending: round2(a.spending / float64(a.count)),
		})
	}

	locs := make([]LocationStat, 0, len(locationOrder))
	for _, l := range locationOrder {
		a := byLocation[l]
		locs = append(locs, LocationStat{
			Location:    l,
			Count:       a.count,
			AvgSpending: round2(a.spending / float64(a.count)),
		})
	}
	// ties keep first-seen order within the window
	sort.SliceStable(locs, func(i, j int) bool { return locs[i].Count > locs[j].Count })
	if len(locs) > 5 {
		locs = locs[:5]
	}
	out.LocationAnalysis = locs

	return out
}

// ---------- Per-user summary row ----------

// RetrieveStats lazily creates the one-per-user summary row and recomputes
// it from the trailing 30-day journal window.
func (s *TrackingService) RetrieveStats(userID uint) (*models.Stats, error) {
	var stats models.Stats
	err := s.db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.Stats{UserID: userID, MoodTrend: "stable"}
		if err := s.db.Create(&stats).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var entries []models.JournalEntry
	if err := s.db.
		Where("user_id = ? AND date >= ?", userID, windowStart(30)).
		Order("date asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	recomputeStats(&stats, entries)
	if err := s.db.Save(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func recomputeStats(stats *models.Stats, entries []models.JournalEntry) {
	stats.MindfulDays = 0
	stats.SleepQuality = 0
	stats.SleepImprovement = 0
	stats.MoodAverage = 0
	stats.MoodTrend = "stable"
	if len(entries) == 0 {
		return
	}

	mindful := map[string]struct{}{}
	var moodSum, sleepSum float64
	for _, e := range entries {
		moodSum += float64(e.Mood)
		sleepSum += e.SleepQuality
		if e.Substance == models.SubstanceNone || e.Substance == models.SubstanceWellness {
			mindful[e.Date.Format("2006-01-02")] = struct{}{}
		}
	}
	n := float64(len(entries))
	stats.MindfulDays = len(mindful)
	stats.MoodAverage = round2(moodSum / n)
	stats.SleepQuality = round2(sleepSum / n)

	// Trend compares the older half of the window with the newer half;
	// entries arrive date-ascending.
	half := len(entries) / 2
	if half == 0 {
		return
	}
	var oldMood, newMood, oldSleep, newSleep float64
	for _, e := range entries[:half] {
		oldMood += float64(e.Mood)
		oldSleep += e.SleepQuality
	}
	for _, e := range entries[half:] {
		newMood += float64(e.Mood)
		newSleep += e.SleepQuality
	}
	oldMood /= float64(half)
	oldSleep /= float64(half)
	newMood /= float64(len(entries) - half)
	newSleep /= float64(len(entries) - half)

	stats.SleepImprovement = round2(newSleep - oldSleep)
	switch {
	case newMood-oldMood > 0.5:
		stats.MoodTrend = "improving"
	case oldMood-newMood > 0.5:
		stats.MoodTrend = "declining"
	}
}
