package services

import (
	"testing"
	"time"

	"github.com/iheomach/vices-app-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func entry(mood int, sleep float64, substance, tags string) models.JournalEntry {
	return models.JournalEntry{
		UserID:       1,
		Date:         time.Now(),
		Substance:    substance,
		Mood:         mood,
		SleepQuality: sleep,
		Tags:         tags,
	}
}

func TestValidateEntryInput(t *testing.T) {
	valid := JournalEntryInput{
		Date:         "2026-08-01",
		Substance:    models.SubstanceAlcohol,
		Mood:         5,
		SleepQuality: 7,
	}
	assert.NoError(t, ValidateEntryInput(&valid))

	cases := []struct {
		name   string
		mutate func(*JournalEntryInput)
	}{
		{"mood too low", func(in *JournalEntryInput) { in.Mood = 0 }},
		{"mood too high", func(in *JournalEntryInput) { in.Mood = 11 }},
		{"sleep quality too low", func(in *JournalEntryInput) { in.SleepQuality = 0.5 }},
		{"sleep quality too high", func(in *JournalEntryInput) { in.SleepQuality = 10.5 }},
		{"bad substance", func(in *JournalEntryInput) { in.Substance = "coffee" }},
		{"bad date", func(in *JournalEntryInput) { in.Date = "01/08/2026" }},
		{"sleep hours negative", func(in *JournalEntryInput) { h := -1; in.SleepHours = &h }},
		{"sleep hours over 24", func(in *JournalEntryInput) { h := 25; in.SleepHours = &h }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.Error(t, ValidateEntryInput(&in))
		})
	}
}

func TestJournalListScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewJournalService(db)

	mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 7))

	out, err := svc.List(7, JournalFilters{})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalUpdateFetchScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewJournalService(db)

	mock.ExpectQuery(`SELECT \* FROM "journal_entries" WHERE \(id = \$1 AND user_id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 7))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "journal_entries" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in := JournalEntryInput{Date: "2026-08-01", Substance: models.SubstanceAlcohol, Mood: 5, SleepQuality: 7}
	_, err := svc.Update(5, 7, &in)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalDeleteScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewJournalService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "journal_entries" SET "deleted_at"=\$1 WHERE \(id = \$2 AND user_id = \$3\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, svc.Delete(5, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListRejectsMalformedDateFilters(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewJournalService(db)

	_, err := svc.List(7, JournalFilters{StartDate: "01/08/2026"})
	assert.ErrorIs(t, err, ErrBadDateFilter)

	_, err = svc.List(7, JournalFilters{EndDate: "not-a-date"})
	assert.ErrorIs(t, err, ErrBadDateFilter)
}

func TestComputeMoodTrendsEmptyWindow(t *testing.T) {
	out := computeMoodTrends(nil)
	assert.Equal(t, 0.0, out.OverallMood)
	assert.Equal(t, 0.0, out.SleepQuality)
	assert.Empty(t, out.MoodBySubstance)
}

func TestComputeMoodTrendsSingleEntry(t *testing.T) {
	out := computeMoodTrends([]models.JournalEntry{entry(7, 8.5, models.SubstanceCannabis, "")})
	assert.Equal(t, 7.0, out.OverallMood)
	assert.Equal(t, 8.5, out.SleepQuality)
	if assert.Len(t, out.MoodBySubstance, 1) {
		assert.Equal(t, models.SubstanceCannabis, out.MoodBySubstance[0].Substance)
		assert.Equal(t, 7.0, out.MoodBySubstance[0].AvgMood)
		assert.Equal(t, 1, out.MoodBySubstance[0].Count)
	}
}

func TestComputeMoodTrendsAverages(t *testing.T) {
	entries := []models.JournalEntry{
		entry(4, 6, models.SubstanceAlcohol, ""),
		entry(6, 7, models.SubstanceAlcohol, ""),
		entry(8, 8, models.SubstanceWellness, ""),
	}
	out := computeMoodTrends(entries)
	assert.Equal(t, 6.0, out.OverallMood)
	assert.Equal(t, 7.0, out.SleepQuality)
	if assert.Len(t, out.MoodBySubstance, 2) {
		assert.Equal(t, models.SubstanceAlcohol, out.MoodBySubstance[0].Substance)
		assert.Equal(t, 5.0, out.MoodBySubstance[0].AvgMood)
		assert.Equal(t, 2, out.MoodBySubstance[0].Count)
	}
}

func TestComputeJournalInsightsEmptyWindow(t *testing.T) {
	out := computeJournalInsights(nil)
	assert.Equal(t, 0, out.TotalEntries)
	assert.Equal(t, 0.0, out.AvgMood)
	assert.Equal(t, 0.0, out.AvgSleepQuality)
	assert.Empty(t, out.SubstanceBreakdown)
	assert.Empty(t, out.CommonTags)
}

func TestComputeJournalInsights(t *testing.T) {
	entries := []models.JournalEntry{
		entry(4, 6, models.SubstanceAlcohol, "social,evening"),
		entry(6, 7, models.SubstanceCannabis, "social,relax"),
		entry(8, 8, models.SubstanceAlcohol, "social"),
	}
	out := computeJournalInsights(entries)
	assert.Equal(t, 3, out.TotalEntries)
	assert.Equal(t, 6.0, out.AvgMood)
	assert.Equal(t, 7.0, out.AvgSleepQuality)

	assert.Equal(t, []SubstanceCount{
		{Substance: models.SubstanceAlcohol, Count: 2},
		{Substance: models.SubstanceCannabis, Count: 1},
	}, out.SubstanceBreakdown)

	if assert.NotEmpty(t, out.CommonTags) {
		assert.Equal(t, TagCount{Tag: "social", Count: 3}, out.CommonTags[0])
	}
}

func TestTopTagsCapsAtFiveAndKeepsFirstSeenOnTies(t *testing.T) {
	entries := []models.JournalEntry{
		entry(5, 5, models.SubstanceNone, "a,b,c"),
		entry(5, 5, models.SubstanceNone, "d,e,f"),
		entry(5, 5, models.SubstanceNone, "f"),
	}
	out := computeJournalInsights(entries)
	assert.Len(t, out.CommonTags, 5)
	// "f" has two hits and leads; the rest all tie at one and keep
	// first-seen order, so "e" (seen after a..d) drops off.
	assert.Equal(t, "f", out.CommonTags[0].Tag)
	assert.Equal(t, []TagCount{
		{Tag: "f", Count: 2},
		{Tag: "a", Count: 1},
		{Tag: "b", Count: 1},
		{Tag: "c", Count: 1},
		{Tag: "d", Count: 1},
	}, out.CommonTags)
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags(""))
	assert.Equal(t, []string{"a", "b"}, splitTags("a, b"))
	assert.Equal(t, []string{"a"}, splitTags("a,,"))
}

func TestWindowStartInclusive(t *testing.T) {
	start := windowStart(30)
	wantDay := time.Now().AddDate(0, 0, -30)
	assert.Equal(t, wantDay.Year(), start.Year())
	assert.Equal(t, wantDay.YearDay(), start.YearDay())
	assert.Equal(t, 0, start.Hour())
}
