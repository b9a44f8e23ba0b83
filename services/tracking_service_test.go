package services

import (
	"testing"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestValidateConsumptionInput(t *testing.T) {
	valid := ConsumptionInput{Date: "2026-08-01", ViceType: models.SubstanceCannabis, Quantity: 1, Spending: 10}
	assert.NoError(t, ValidateConsumptionInput(&valid))

	cases := []struct {
		name   string
		mutate func(*ConsumptionInput)
	}{
		{"negative quantity", func(in *ConsumptionInput) { in.Quantity = -1 }},
		{"negative spending", func(in *ConsumptionInput) { in.Spending = -0.01 }},
		{"bad vice type", func(in *ConsumptionInput) { in.ViceType = "sugar" }},
		{"mood_before out of range", func(in *ConsumptionInput) { in.MoodBefore = intp(0) }},
		{"mood_after out of range", func(in *ConsumptionInput) { in.MoodAfter = intp(11) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.Error(t, ValidateConsumptionInput(&in))
		})
	}
}

func TestConsumptionListScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewTrackingService(db)

	mock.ExpectQuery(`SELECT \* FROM "consumption_stats" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 7))

	out, err := svc.List(7, ConsumptionFilters{})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumptionDeleteScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewTrackingService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "consumption_stats" SET "deleted_at"=\$1 WHERE \(id = \$2 AND user_id = \$3\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, svc.Delete(5, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumptionListRejectsMalformedDateFilters(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewTrackingService(db)

	_, err := svc.List(7, ConsumptionFilters{StartDate: "08-01-2026"})
	assert.ErrorIs(t, err, ErrBadDateFilter)
}

func TestComputeConsumptionAnalysisEmptyWindow(t *testing.T) {
	out := computeConsumptionAnalysis(nil)
	assert.Equal(t, 0.0, out.TotalSpending)
	assert.NotNil(t, out.ConsumptionByType)
	assert.Empty(t, out.ConsumptionByType)
	assert.Empty(t, out.TimeOfDayBreakdown)
	assert.Empty(t, out.LocationAnalysis)
}

func TestComputeConsumptionAnalysisMoodImpact(t *testing.T) {
	rows := []models.ConsumptionStat{
		{ViceType: models.SubstanceAlcohol, Spending: 20, Quantity: 2, MoodBefore: intp(4), MoodAfter: intp(7)},
		{ViceType: models.SubstanceAlcohol, Spending: 30, Quantity: 3, MoodBefore: intp(6), MoodAfter: intp(5)},
		{ViceType: models.SubstanceCannabis, Spending: 15, Quantity: 1},
	}
	out := computeConsumptionAnalysis(rows)

	assert.Equal(t, 65.0, out.TotalSpending)
	if assert.Len(t, out.ConsumptionByType, 2) {
		alcohol := out.ConsumptionByType[0]
		assert.Equal(t, models.SubstanceAlcohol, alcohol.ViceType)
		assert.Equal(t, 5.0, alcohol.TotalQuantity)
		assert.Equal(t, 50.0, alcohol.TotalSpending)
		assert.Equal(t, 2, alcohol.Count)
		// mean(after)=6, mean(before)=5
		if assert.NotNil(t, alcohol.AvgMoodImpact) {
			assert.Equal(t, 1.0, *alcohol.AvgMoodImpact)
		}

		cannabis := out.ConsumptionByType[1]
		assert.Nil(t, cannabis.AvgMoodImpact, "no before/after pairs means no impact figure")
	}
}

func TestComputeConsumptionAnalysisLocationTopFive(t *testing.T) {
	var rows []models.ConsumptionStat
	for _, loc := range []string{"home", "bar", "park", "home", "club", "patio", "lake", "home"} {
		rows = append(rows, models.ConsumptionStat{ViceType: models.SubstanceAlcohol, Location: loc, Spending: 10})
	}
	out := computeConsumptionAnalysis(rows)

	assert.Len(t, out.LocationAnalysis, 5)
	assert.Equal(t, "home", out.LocationAnalysis[0].Location)
	assert.Equal(t, 3, out.LocationAnalysis[0].Count)
	// singles tie and keep first-seen order
	assert.Equal(t, "bar", out.LocationAnalysis[1].Location)
	assert.Equal(t, "park", out.LocationAnalysis[2].Location)
}

func TestComputeConsumptionAnalysisTimeOfDay(t *testing.T) {
	rows := []models.ConsumptionStat{
		{ViceType: models.SubstanceAlcohol, TimeOfDay: "evening", Spending: 10},
		{ViceType: models.SubstanceAlcohol, TimeOfDay: "evening", Spending: 20},
		{ViceType: models.SubstanceAlcohol, TimeOfDay: "morning", Spending: 5},
	}
	out := computeConsumptionAnalysis(rows)
	if assert.Len(t, out.TimeOfDayBreakdown, 2) {
		assert.Equal(t, "evening", out.TimeOfDayBreakdown[0].TimeOfDay)
		assert.Equal(t, 2, out.TimeOfDayBreakdown[0].Count)
		assert.Equal(t, 15.0, out.TimeOfDayBreakdown[0].AvgSpending)
	}
}

func statsEntry(daysAgo, mood int, sleep float64, substance string) models.JournalEntry {
	return models.JournalEntry{
		Date:         time.Now().AddDate(0, 0, -daysAgo),
		Mood:         mood,
		SleepQuality: sleep,
		Substance:    substance,
	}
}

func TestRecomputeStatsEmpty(t *testing.T) {
	stats := models.Stats{MindfulDays: 3, MoodAverage: 5, MoodTrend: "improving"}
	recomputeStats(&stats, nil)
	assert.Equal(t, 0, stats.MindfulDays)
	assert.Equal(t, 0.0, stats.MoodAverage)
	assert.Equal(t, "stable", stats.MoodTrend)
}

func TestRecomputeStatsTrend(t *testing.T) {
	// older half low mood, newer half high mood
	entries := []models.JournalEntry{
		statsEntry(20, 3, 5, models.SubstanceAlcohol),
		statsEntry(15, 4, 5, models.SubstanceAlcohol),
		statsEntry(5, 7, 7, models.SubstanceWellness),
		statsEntry(1, 8, 8, models.SubstanceNone),
	}
	var stats models.Stats
	recomputeStats(&stats, entries)

	assert.Equal(t, "improving", stats.MoodTrend)
	assert.Equal(t, 2, stats.MindfulDays)
	assert.Equal(t, 5.5, stats.MoodAverage)
	assert.Equal(t, 2.5, stats.SleepImprovement)
}

func TestRecomputeStatsDeclining(t *testing.T) {
	entries := []models.JournalEntry{
		statsEntry(10, 9, 8, models.SubstanceAlcohol),
		statsEntry(2, 3, 4, models.SubstanceAlcohol),
	}
	var stats models.Stats
	recomputeStats(&stats, entries)
	assert.Equal(t, "declining", stats.MoodTrend)
}
