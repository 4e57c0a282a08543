package srs

import (
	"math"
	"time"

	"github.com/phrazzld/neurodeck/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the response.
//
// The ease factor represents how easy the card is for the learner: higher values
// make intervals grow faster. A known response raises it by params.SuccessBonus,
// an unknown response lowers it by params.FailurePenalty.
//
// Parameters:
//   - currentEF: The current ease factor of the card, between 1.3 and 2.5
//   - known: Whether the learner knew the answer
//   - params: Configuration parameters for the SRS algorithm
//
// Returns:
//   - The new ease factor value, clamped between params.MinEaseFactor and params.MaxEaseFactor
func calculateNewEaseFactor(currentEF float64, known bool, params *Params) float64 {
	newEF := currentEF - params.FailurePenalty
	if known {
		newEF = currentEF + params.SuccessBonus
	}

	// Ensure ease factor stays within configured limits
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days.
//
// A known response multiplies the current interval by the card's ease factor.
// The caller passes the ease factor AFTER it has been updated for this
// response, so a card at interval 10 and ease 2.0 moves to round(10 * 2.1) = 21.
// An unknown response resets the interval to params.ResetInterval regardless
// of how far the card had progressed.
//
// Parameters:
//   - currentInterval: The current interval in days
//   - newEF: The ease factor already adjusted for this response
//   - known: Whether the learner knew the answer
//   - params: Configuration parameters for the SRS algorithm
//
// Returns:
//   - An integer number of days, never less than 1
func calculateNewInterval(currentInterval int, newEF float64, known bool, params *Params) int {
	if !known {
		return max(params.ResetInterval, 1)
	}

	newInterval := int(math.Round(float64(currentInterval) * newEF))

	// Rounding cannot reach zero for valid cards, but a corrupted interval
	// must not schedule a card in the past.
	return max(newInterval, 1)
}

// calculateNextReviewDate returns the time the card becomes due again.
//
// Days are added on the calendar (time.AddDate), not as multiples of 24 hours,
// so the wall-clock time of day is preserved across daylight saving changes.
func calculateNextReviewDate(now time.Time, intervalDays int) time.Time {
	return now.AddDate(0, 0, intervalDays)
}

// calculateNextCard applies a single response to a copy of card and returns the
// updated copy together with the log entry describing the response.
// The input card is never modified. The log entry ID is left zero: ids are
// assigned by whoever persists the entry.
func calculateNextCard(
	card domain.Card,
	known bool,
	now time.Time,
	params *Params,
) (domain.Card, domain.StudyLogEntry) {
	next := card.Clone()

	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, known, params)
	next.Interval = calculateNewInterval(card.Interval, next.EaseFactor, known, params)
	if known {
		next.CorrectCount = card.CorrectCount + 1
	}
	next.ReviewCount = card.ReviewCount + 1

	reviewed := now
	due := calculateNextReviewDate(now, next.Interval)
	next.LastReviewed = &reviewed
	next.NextReview = &due

	entry := domain.StudyLogEntry{
		DeckID:    card.DeckID,
		CardID:    card.ID,
		Timestamp: now,
		Known:     known,
	}

	return next, entry
}

// ApplyResponse records a known/unknown response against card using the
// default parameters. It returns the updated card and exactly one new log entry.
func ApplyResponse(card domain.Card, known bool, now time.Time) (domain.Card, domain.StudyLogEntry) {
	return calculateNextCard(card, known, now, defaultParams)
}

var defaultParams = NewDefaultParams()
