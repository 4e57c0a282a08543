package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	deckID := uuid.New()

	card, err := NewCard(deckID, "What is a neuron?", "A nerve cell", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, card.DeckID)
	}

	if card.Interval != DefaultInterval || card.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected default schedule, got interval %d ease %f", card.Interval, card.EaseFactor)
	}

	if card.ReviewCount != 0 || card.CorrectCount != 0 {
		t.Errorf("Expected zero counters, got %d/%d", card.CorrectCount, card.ReviewCount)
	}

	if card.NextReview != nil || card.LastReviewed != nil {
		t.Error("Expected a never-reviewed card to have no review timestamps")
	}

	if card.Tags == nil {
		t.Error("Expected tags to default to an empty slice")
	}

	if !card.IsNew() {
		t.Error("Expected new card to report IsNew")
	}

	// Test invalid deck ID
	_, err = NewCard(uuid.Nil, "front", "back", nil)
	if !errors.Is(err, ErrCardDeckIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardDeckIDEmpty, err)
	}

	// Test empty content
	_, err = NewCard(deckID, "  ", "back", nil)
	if !errors.Is(err, ErrCardFrontEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardFrontEmpty, err)
	}

	_, err = NewCard(deckID, "front", "", nil)
	if !errors.Is(err, ErrCardBackEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardBackEmpty, err)
	}

	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected card errors to match ErrValidation, got %v", err)
	}
}

func TestCardValidateSchedule(t *testing.T) {
	t.Parallel()

	base, err := NewCard(uuid.New(), "front", "back", nil)
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	testCases := []struct {
		name    string
		mutate  func(c *Card)
		wantErr bool
	}{
		{"valid default", func(c *Card) {}, false},
		{"zero interval", func(c *Card) { c.Interval = 0 }, true},
		{"ease below minimum", func(c *Card) { c.EaseFactor = 1.2 }, true},
		{"ease above maximum", func(c *Card) { c.EaseFactor = 2.6 }, true},
		{"ease at minimum", func(c *Card) { c.EaseFactor = MinEaseFactor }, false},
		{"correct exceeds reviews", func(c *Card) { c.ReviewCount = 1; c.CorrectCount = 2 }, true},
		{"negative reviews", func(c *Card) { c.ReviewCount = -1 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := base.Clone()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Errorf("Expected ErrInvalidSchedule, got %v", err)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Expected error to match ErrValidation, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestCardUpdateContent(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), "Hola", "Hello", []string{"spanish"})
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	card.ReviewCount = 3
	card.CorrectCount = 2

	if err := card.UpdateContent("Adiós", "Goodbye", nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.Front != "Adiós" || card.Back != "Goodbye" {
		t.Errorf("Expected content to change, got %q/%q", card.Front, card.Back)
	}
	if len(card.Tags) != 1 || card.Tags[0] != "spanish" {
		t.Errorf("Expected tags to be kept when nil is passed, got %v", card.Tags)
	}
	if card.ReviewCount != 3 || card.CorrectCount != 2 {
		t.Error("Expected scheduling state to be untouched")
	}

	if err := card.UpdateContent("", "Goodbye", nil); err == nil {
		t.Fatal("Expected error for empty front")
	}
	if card.Front != "Adiós" {
		t.Errorf("Expected content to be restored after failed update, got %q", card.Front)
	}
}

func TestCardClone(t *testing.T) {
	t.Parallel()

	now := time.Now()
	card := Card{
		ID:         uuid.New(),
		Tags:       []string{"a"},
		NextReview: &now,
	}

	clone := card.Clone()
	clone.Tags[0] = "b"
	*clone.NextReview = now.Add(time.Hour)

	if card.Tags[0] != "a" {
		t.Error("Expected clone tags to be independent")
	}
	if !card.NextReview.Equal(now) {
		t.Error("Expected clone NextReview to be independent")
	}
}
