package srs

import (
	"time"

	"github.com/phrazzld/neurodeck/internal/domain"
)

// Categories partitions a set of cards by learning stage.
type Categories struct {
	New      []domain.Card
	Learning []domain.Card
	Mastered []domain.Card
}

// Total returns the number of cards across all buckets.
func (c Categories) Total() int {
	return len(c.New) + len(c.Learning) + len(c.Mastered)
}

// IsDue reports whether card should be reviewed at now. A card that has never
// been scheduled is always due.
func IsDue(card domain.Card, now time.Time) bool {
	return card.NextReview == nil || !card.NextReview.After(now)
}

// DueCards returns the cards due at now, preserving input order.
func DueCards(cards []domain.Card, now time.Time) []domain.Card {
	due := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if IsDue(c, now) {
			due = append(due, c)
		}
	}
	return due
}

// CountDue returns how many cards are due at now.
func CountDue(cards []domain.Card, now time.Time) int {
	n := 0
	for _, c := range cards {
		if IsDue(c, now) {
			n++
		}
	}
	return n
}

// Categorize splits cards into new, learning and mastered buckets using the
// default mastered threshold.
func Categorize(cards []domain.Card) Categories {
	return categorize(cards, defaultParams)
}

// categorize never places a card in two buckets: a card with no reviews is new
// even if its interval already reaches the mastered threshold.
func categorize(cards []domain.Card, params *Params) Categories {
	var out Categories
	for _, c := range cards {
		switch {
		case c.ReviewCount == 0:
			out.New = append(out.New, c)
		case c.Interval >= params.MasteredInterval:
			out.Mastered = append(out.Mastered, c)
		default:
			out.Learning = append(out.Learning, c)
		}
	}
	return out
}
