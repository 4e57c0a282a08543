package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults and bounds shared by every card.
const (
	DefaultInterval   = 1
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = fmt.Errorf("%w: card deck ID cannot be empty", ErrValidation)

	// ErrCardFrontEmpty is returned when a card has no prompt.
	ErrCardFrontEmpty = fmt.Errorf("%w: card front cannot be empty", ErrValidation)

	// ErrCardBackEmpty is returned when a card has no answer.
	ErrCardBackEmpty = fmt.Errorf("%w: card back cannot be empty", ErrValidation)
)

// Card is a single memorization unit: a prompt, its answer and the
// scheduling state derived from every response recorded against it.
//
// A nil NextReview means the card has never been scheduled and is due
// immediately.
type Card struct {
	ID           uuid.UUID  `json:"id"`
	DeckID       uuid.UUID  `json:"deck_id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	Interval     int        `json:"interval"`    // days until the next review
	EaseFactor   float64    `json:"ease_factor"` // interval multiplier, 1.3-2.5
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
}

// NewCard creates a never-reviewed card in the given deck with default
// scheduling values and a fresh UUID.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string, tags []string) (*Card, error) {
	if tags == nil {
		tags = []string{}
	}
	card := &Card{
		ID:         uuid.New(),
		DeckID:     deckID,
		Front:      front,
		Back:       back,
		Tags:       tags,
		CreatedAt:  time.Now().UTC(),
		Interval:   DefaultInterval,
		EaseFactor: DefaultEaseFactor,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}

	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}

	if c.Interval < 1 {
		return NewValidationError("interval", "must be at least 1", ErrInvalidSchedule)
	}

	if c.EaseFactor < MinEaseFactor || c.EaseFactor > MaxEaseFactor {
		return NewValidationError("ease_factor", "must be between 1.3 and 2.5", ErrInvalidSchedule)
	}

	if c.ReviewCount < 0 || c.CorrectCount < 0 || c.CorrectCount > c.ReviewCount {
		return NewValidationError("correct_count", "must not exceed review_count", ErrInvalidSchedule)
	}

	return nil
}

// UpdateContent replaces the card's front, back and tags, leaving the
// scheduling state untouched. The card is unchanged if validation fails.
func (c *Card) UpdateContent(front, back string, tags []string) error {
	orig := *c
	c.Front = front
	c.Back = back
	if tags != nil {
		c.Tags = tags
	}

	if err := c.Validate(); err != nil {
		*c = orig
		return err
	}
	return nil
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return c.ReviewCount == 0
}

// Clone returns a deep copy of the card. Pointer and slice fields are
// copied by value.
func (c Card) Clone() Card {
	out := c
	if c.Tags != nil {
		out.Tags = slices.Clone(c.Tags)
	}
	if c.LastReviewed != nil {
		v := *c.LastReviewed
		out.LastReviewed = &v
	}
	if c.NextReview != nil {
		v := *c.NextReview
		out.NextReview = &v
	}
	return out
}
