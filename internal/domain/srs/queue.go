package srs

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// SortByUrgency returns a copy of cards ordered most urgent first. Cards that
// were never scheduled come first in their original order, followed by the
// rest ordered by next review time. Ties keep input order.
func SortByUrgency(cards []domain.Card) []domain.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, compareUrgency)
	return sorted
}

func compareUrgency(a, b domain.Card) int {
	switch {
	case a.NextReview == nil && b.NextReview == nil:
		return 0
	case a.NextReview == nil:
		return -1
	case b.NextReview == nil:
		return 1
	default:
		return a.NextReview.Compare(*b.NextReview)
	}
}

// BuildStudyQueue builds a study session of at most maxSize cards: due cards
// in urgency order, then never-reviewed cards in collection order to fill
// any remaining capacity. A card appears at most once.
func BuildStudyQueue(cards []domain.Card, now time.Time, maxSize int) []domain.Card {
	if maxSize <= 0 {
		return []domain.Card{}
	}

	capacity := min(maxSize, len(cards))
	queue := make([]domain.Card, 0, capacity)
	queued := make(map[uuid.UUID]struct{}, capacity)
	add := func(c domain.Card) {
		if _, ok := queued[c.ID]; ok {
			return
		}
		queued[c.ID] = struct{}{}
		queue = append(queue, c)
	}

	for _, c := range SortByUrgency(DueCards(cards, now)) {
		if len(queue) == maxSize {
			return queue
		}
		add(c)
	}

	for _, c := range cards {
		if len(queue) == maxSize {
			break
		}
		if c.ReviewCount == 0 {
			add(c)
		}
	}

	return queue
}
