package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = fmt.Errorf("%w: deck ID cannot be empty", ErrValidation)

	// ErrDeckTitleEmpty is returned when a deck has no title.
	ErrDeckTitleEmpty = fmt.Errorf("%w: deck title cannot be empty", ErrValidation)
)

// Deck is a named, ordered collection of cards.
type Deck struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudied *time.Time `json:"last_studied,omitempty"`
	Cards       []Card     `json:"cards"`
}

// NewDeck creates an empty deck with a fresh UUID.
// Returns an error if validation fails.
func NewDeck(title, description string, tags []string) (*Deck, error) {
	if tags == nil {
		tags = []string{}
	}
	deck := &Deck{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
		Cards:       []Card{},
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data. Cards are not validated here.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if strings.TrimSpace(d.Title) == "" {
		return ErrDeckTitleEmpty
	}

	return nil
}

// CardIndex returns the position of the card with the given ID, or -1.
func (d *Deck) CardIndex(cardID uuid.UUID) int {
	for i := range d.Cards {
		if d.Cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the deck including its cards.
func (d Deck) Clone() Deck {
	out := d
	if d.Tags != nil {
		out.Tags = slices.Clone(d.Tags)
	}
	if d.LastStudied != nil {
		v := *d.LastStudied
		out.LastStudied = &v
	}
	if d.Cards != nil {
		out.Cards = make([]Card, len(d.Cards))
		for i, c := range d.Cards {
			out.Cards[i] = c.Clone()
		}
	}
	return out
}
