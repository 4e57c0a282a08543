package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store.
	// IMPORTANT: This method MUST be run within a transaction for atomicity.
	// All cards must be valid according to domain validation rules.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// ListByDeck returns the cards of a deck in collection order.
	// A deck without cards yields an empty slice, not an error.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error)

	// Get retrieves a card of the given deck.
	// Returns ErrCardNotFound if the card does not exist in that deck.
	Get(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error)

	// GetForUpdate behaves like Get but locks the row until the surrounding
	// transaction ends, so two answers to the same card are serialized.
	GetForUpdate(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error)

	// Update replaces the content and scheduling state of an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from a deck. Its study log entries are kept.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, deckID, cardID uuid.UUID) error

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
