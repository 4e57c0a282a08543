package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/neurodeck/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const cardColumns = `id, deck_id, front, back, tags, created_at, last_reviewed, next_review,
		interval_days, ease_factor, review_count, correct_count`

const deckColumns = `id, title, description, tags, created_at, last_studied`

// encodeTags stores tags as a JSONB array; nil becomes an empty array.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return b, nil
}

func decodeTags(raw []byte) ([]string, error) {
	tags := []string{}
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card         domain.Card
		tags         []byte
		lastReviewed sql.NullTime
		nextReview   sql.NullTime
	)

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&tags,
		&card.CreatedAt,
		&lastReviewed,
		&nextReview,
		&card.Interval,
		&card.EaseFactor,
		&card.ReviewCount,
		&card.CorrectCount,
	)
	if err != nil {
		return nil, err
	}

	if card.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	card.LastReviewed = timePtr(lastReviewed)
	card.NextReview = timePtr(nextReview)
	return &card, nil
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var (
		deck        domain.Deck
		tags        []byte
		lastStudied sql.NullTime
	)

	err := row.Scan(
		&deck.ID,
		&deck.Title,
		&deck.Description,
		&tags,
		&deck.CreatedAt,
		&lastStudied,
	)
	if err != nil {
		return nil, err
	}

	if deck.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	deck.LastStudied = timePtr(lastStudied)
	deck.Cards = []domain.Card{}
	return &deck, nil
}
