package srs

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/dates"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// ActivityWindowDays is the number of days covered by the activity calendar.
const ActivityWindowDays = 90

// maxIntensity is the highest activity intensity bucket.
const maxIntensity = 5

// RetentionRate returns the percentage of known responses in logs, rounded to
// the nearest integer. An empty log has a retention of 0.
func RetentionRate(logs []domain.StudyLogEntry) int {
	correct := 0
	for _, l := range logs {
		if l.Known {
			correct++
		}
	}
	return RetentionFromCounts(correct, len(logs))
}

// RetentionFromCounts returns round(100 * correct / total), or 0 when total is 0.
func RetentionFromCounts(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Streak counts consecutive calendar days with at least one review, ending
// today. It is 0 when nothing was reviewed today. Days are compared in
// today's location and the scan stops 365 days back.
func Streak(timestamps []time.Time, today time.Time) int {
	return streak(timestamps, today, defaultParams.StreakScanDays)
}

func streak(timestamps []time.Time, today time.Time, scanDays int) int {
	if len(timestamps) == 0 {
		return 0
	}

	loc := today.Location()
	active := make(map[string]struct{}, len(timestamps))
	for _, ts := range timestamps {
		active[dates.DateKey(ts.In(loc))] = struct{}{}
	}

	if _, ok := active[dates.DateKey(today)]; !ok {
		return 0
	}

	count := 1
	for i := 1; i <= scanDays; i++ {
		if _, ok := active[dates.DateKey(dates.ShiftDays(today, -i))]; !ok {
			break
		}
		count++
	}
	return count
}

// DailyRetention returns one retention point per date key in days, in the
// same order. Log timestamps are grouped by their date in loc.
func DailyRetention(logs []domain.StudyLogEntry, days []string, loc *time.Location) []domain.RetentionPoint {
	type tally struct{ correct, total int }
	byDay := make(map[string]*tally, len(days))
	for _, d := range days {
		byDay[d] = &tally{}
	}

	for _, l := range logs {
		t, ok := byDay[dates.DateKey(l.Timestamp.In(loc))]
		if !ok {
			continue
		}
		t.total++
		if l.Known {
			t.correct++
		}
	}

	points := make([]domain.RetentionPoint, len(days))
	for i, d := range days {
		t := byDay[d]
		points[i] = domain.RetentionPoint{
			Date:       d,
			Correct:    t.correct,
			Total:      t.total,
			Percentage: RetentionFromCounts(t.correct, t.total),
		}
	}
	return points
}

// WeeklyRetention returns the retention series for the seven days ending on
// the date of now.
func WeeklyRetention(logs []domain.StudyLogEntry, now time.Time) []domain.RetentionPoint {
	return DailyRetention(logs, dates.PastWeekDates(now), now.Location())
}

// DailyActivity returns the review count for each of the last 90 days ending
// today, oldest first. Intensity scales each count against the busiest day
// in the whole log, from 1 to 5; days without reviews have intensity 0.
func DailyActivity(logs []domain.StudyLogEntry, now time.Time) []domain.ActivityDay {
	loc := now.Location()
	counts := make(map[string]int)
	busiest := 1
	for _, l := range logs {
		key := dates.DateKey(l.Timestamp.In(loc))
		counts[key]++
		busiest = max(busiest, counts[key])
	}

	days := dates.PastDays(now, ActivityWindowDays)
	out := make([]domain.ActivityDay, len(days))
	for i, d := range days {
		n := counts[d]
		out[i] = domain.ActivityDay{Date: d, Count: n, Intensity: activityIntensity(n, busiest)}
	}
	return out
}

func activityIntensity(count, busiest int) int {
	if count <= 0 {
		return 0
	}
	level := int(math.Ceil(float64(count) / float64(busiest) * maxIntensity))
	return min(level, maxIntensity)
}

// MasteryLevel scores how well a card is learned, from 0 to 100. Interval
// growth up to 60 days contributes 70% and ease factor the remaining 30%.
func MasteryLevel(card domain.Card) int {
	intervalScore := math.Min(float64(card.Interval)/60, 1)
	easeScore := (card.EaseFactor - domain.MinEaseFactor) / (domain.MaxEaseFactor - domain.MinEaseFactor)
	return int(math.Round((intervalScore*0.7 + easeScore*0.3) * 100))
}

// CardRetention returns the share of known responses logged for card. A card
// with no logged responses scores 0 once it has been reviewed and 50 before.
func CardRetention(card domain.Card, logs []domain.StudyLogEntry) int {
	correct, total := 0, 0
	for _, l := range logs {
		if l.CardID != card.ID {
			continue
		}
		total++
		if l.Known {
			correct++
		}
	}

	switch {
	case total > 0:
		return RetentionFromCounts(correct, total)
	case card.ReviewCount > 0:
		return 0
	default:
		return 50
	}
}

// Summarize computes progress statistics for cards and the log entries
// recorded against them.
func Summarize(cards []domain.Card, logs []domain.StudyLogEntry, now time.Time) domain.StudyStats {
	return summarize(cards, logs, now, defaultParams)
}

func summarize(cards []domain.Card, logs []domain.StudyLogEntry, now time.Time, params *Params) domain.StudyStats {
	cats := categorize(cards, params)

	stats := domain.StudyStats{
		TotalCards:    len(cards),
		MasteredCards: len(cats.Mastered),
		LearningCards: len(cats.Learning),
		NewCards:      len(cats.New),
		DueCards:      CountDue(cards, now),
		TotalReviews:  len(logs),
		Retention:     RetentionRate(logs),
		Streak:        streak(domain.Timestamps(logs), now, params.StreakScanDays),
	}

	for _, l := range logs {
		if stats.LastStudied == nil || l.Timestamp.After(*stats.LastStudied) {
			ts := l.Timestamp
			stats.LastStudied = &ts
		}
	}

	return stats
}

// FilterLogsByDeck returns the entries recorded against deckID, in log order.
func FilterLogsByDeck(logs []domain.StudyLogEntry, deckID uuid.UUID) []domain.StudyLogEntry {
	out := make([]domain.StudyLogEntry, 0, len(logs))
	for _, l := range logs {
		if l.DeckID == deckID {
			out = append(out, l)
		}
	}
	return out
}
