package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

func logAt(ts time.Time, known bool) domain.StudyLogEntry {
	return domain.StudyLogEntry{ID: uuid.New(), CardID: uuid.New(), DeckID: uuid.New(), Timestamp: ts, Known: known}
}

func TestRetentionRate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now()

	assert.Equal(t, 0, RetentionRate(nil))
	assert.Equal(t, 0, RetentionRate([]domain.StudyLogEntry{}))
	assert.Equal(t, 100, RetentionRate([]domain.StudyLogEntry{logAt(now, true)}))
	assert.Equal(t, 0, RetentionRate([]domain.StudyLogEntry{logAt(now, false)}))
	assert.Equal(t, 67, RetentionRate([]domain.StudyLogEntry{logAt(now, true), logAt(now, true), logAt(now, false)}))
	assert.Equal(t, 33, RetentionRate([]domain.StudyLogEntry{logAt(now, true), logAt(now, false), logAt(now, false)}))
}

func TestRetentionFromCounts(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, 0, RetentionFromCounts(0, 0))
	assert.Equal(t, 0, RetentionFromCounts(3, 0))
	assert.Equal(t, 50, RetentionFromCounts(1, 2))
	assert.Equal(t, 88, RetentionFromCounts(7, 8))
	assert.Equal(t, 100, RetentionFromCounts(8, 8))
}

func TestStreak(t *testing.T) {
	t.Parallel() // Enable parallel execution
	today := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	day := func(n int, hour int) time.Time {
		return time.Date(2025, 6, 15-n, hour, 0, 0, 0, time.UTC)
	}

	testCases := []struct {
		name       string
		timestamps []time.Time
		expected   int
	}{
		{name: "No logs", timestamps: nil, expected: 0},
		{name: "Nothing today", timestamps: []time.Time{day(1, 10), day(2, 10), day(3, 10)}, expected: 0},
		{name: "Only today", timestamps: []time.Time{day(0, 9)}, expected: 1},
		{
			name:       "Today yesterday and the day before",
			timestamps: []time.Time{day(2, 23), day(0, 1), day(1, 12)},
			expected:   3,
		},
		{
			name:       "Gap two days back",
			timestamps: []time.Time{day(0, 9), day(1, 9), day(3, 9), day(4, 9)},
			expected:   2,
		},
		{
			name:       "Multiple entries per day count once",
			timestamps: []time.Time{day(0, 1), day(0, 2), day(0, 3), day(1, 4), day(1, 5)},
			expected:   2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Streak(tc.timestamps, today))
		})
	}
}

func TestStreakIsCapped(t *testing.T) {
	t.Parallel() // Enable parallel execution
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	var timestamps []time.Time
	for i := 0; i < 500; i++ {
		timestamps = append(timestamps, today.AddDate(0, 0, -i))
	}

	assert.Equal(t, 366, Streak(timestamps, today))
	assert.Equal(t, 11, streak(timestamps, today, 10))
}

func TestStreakUsesTodaysLocation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 2025-06-15 20:00 in Los Angeles is 2025-06-16 03:00 UTC.
	today := time.Date(2025, 6, 15, 21, 0, 0, 0, loc)
	stamps := []time.Time{
		time.Date(2025, 6, 16, 3, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC), // 2025-06-14 20:00 local
	}

	assert.Equal(t, 2, Streak(stamps, today))
	assert.Equal(t, 0, Streak(stamps[:1], today.In(time.UTC).AddDate(0, 0, 1)))
}

func TestStreakAcrossDST(t *testing.T) {
	t.Parallel() // Enable parallel execution
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Spring forward on 2024-03-10 and fall back on 2024-11-03.
	for _, today := range []time.Time{
		time.Date(2024, 3, 11, 0, 30, 0, 0, loc),
		time.Date(2024, 11, 4, 23, 30, 0, 0, loc),
	} {
		var stamps []time.Time
		for i := 0; i < 5; i++ {
			y, m, d := today.Date()
			stamps = append(stamps, time.Date(y, m, d-i, 0, 15, 0, 0, loc))
		}
		assert.Equal(t, 5, Streak(stamps, today), "today %s", today)
	}
}

func TestDailyRetention(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	logs := []domain.StudyLogEntry{
		logAt(now, true),
		logAt(now.Add(-time.Hour), false),
		logAt(now.AddDate(0, 0, -2), true),
		logAt(now.AddDate(0, 0, -30), true), // outside the week
	}

	points := WeeklyRetention(logs, now)

	require.Len(t, points, 7)
	assert.Equal(t, "2025-06-09", points[0].Date)
	assert.Equal(t, domain.RetentionPoint{Date: "2025-06-13", Correct: 1, Total: 1, Percentage: 100}, points[4])
	assert.Equal(t, domain.RetentionPoint{Date: "2025-06-14", Correct: 0, Total: 0, Percentage: 0}, points[5])
	assert.Equal(t, domain.RetentionPoint{Date: "2025-06-15", Correct: 1, Total: 2, Percentage: 50}, points[6])
}

func TestDailyActivity(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	var logs []domain.StudyLogEntry
	for i := 0; i < 10; i++ {
		logs = append(logs, logAt(now, true))
	}
	logs = append(logs, logAt(now.AddDate(0, 0, -1), false))
	for i := 0; i < 5; i++ {
		logs = append(logs, logAt(now.AddDate(0, 0, -89), true))
	}

	days := DailyActivity(logs, now)

	require.Len(t, days, ActivityWindowDays)
	assert.Equal(t, domain.ActivityDay{Date: "2025-06-15", Count: 10, Intensity: 5}, days[89])
	assert.Equal(t, domain.ActivityDay{Date: "2025-06-14", Count: 1, Intensity: 1}, days[88])
	assert.Equal(t, domain.ActivityDay{Date: "2025-03-18", Count: 5, Intensity: 3}, days[0])
	assert.Equal(t, 0, days[50].Count)
	assert.Equal(t, 0, days[50].Intensity)
}

func TestMasteryLevel(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, 0, MasteryLevel(newTestCard(0, 1.3)))
	assert.Equal(t, 31, MasteryLevel(newTestCard(1, 2.5)))
	assert.Equal(t, 65, MasteryLevel(newTestCard(30, 2.5)))
	assert.Equal(t, 100, MasteryLevel(newTestCard(60, 2.5)))
	assert.Equal(t, 100, MasteryLevel(newTestCard(365, 2.5)))
	assert.Equal(t, 70, MasteryLevel(newTestCard(90, 1.3)))
}

func TestCardRetention(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now()
	card := newTestCard(1, 2.5)

	assert.Equal(t, 50, CardRetention(card, nil), "unreviewed card without logs")

	reviewed := card
	reviewed.ReviewCount = 2
	assert.Equal(t, 0, CardRetention(reviewed, nil), "reviewed card without logs")

	logs := []domain.StudyLogEntry{logAt(now, true), logAt(now, true)}
	logs[0].CardID = card.ID
	assert.Equal(t, 100, CardRetention(card, logs))
}

func TestSummarize(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	newCard := newTestCard(1, 2.5)
	learning := withNextReview(newTestCard(3, 2.4), now.Add(-time.Hour))
	learning.ReviewCount = 2
	learning.CorrectCount = 1
	mastered := withNextReview(newTestCard(40, 2.5), now.AddDate(0, 0, 10))
	mastered.ReviewCount = 6
	mastered.CorrectCount = 6

	latest := now.Add(-2 * time.Hour)
	logs := []domain.StudyLogEntry{
		logAt(now.AddDate(0, 0, -1), true),
		logAt(latest, false),
		logAt(now.Add(-5*time.Hour), true),
		logAt(now.AddDate(0, 0, -1).Add(time.Hour), true),
	}

	stats := Summarize([]domain.Card{newCard, learning, mastered}, logs, now)

	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 1, stats.NewCards)
	assert.Equal(t, 1, stats.LearningCards)
	assert.Equal(t, 1, stats.MasteredCards)
	assert.Equal(t, 2, stats.DueCards)
	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, 75, stats.Retention)
	assert.Equal(t, 2, stats.Streak)
	require.NotNil(t, stats.LastStudied)
	assert.Equal(t, latest, *stats.LastStudied)

	empty := Summarize(nil, nil, now)
	assert.Equal(t, domain.StudyStats{}, empty)
}

func TestFilterLogsByDeck(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now()
	deckID := uuid.New()

	a, b, c := logAt(now, true), logAt(now, false), logAt(now, true)
	a.DeckID = deckID
	c.DeckID = deckID

	assert.Equal(t, []domain.StudyLogEntry{a, c}, FilterLogsByDeck([]domain.StudyLogEntry{a, b, c}, deckID))
}
