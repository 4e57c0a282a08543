package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// List returns every deck ordered by creation time, each with its cards.
	List(ctx context.Context) ([]domain.Deck, error)

	// Get retrieves a deck and its cards by ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// Create saves a new deck. Cards attached to the deck are not saved;
	// use CardStore.CreateMultiple for those.
	// Returns ErrDeckExists if the ID is already taken.
	Create(ctx context.Context, deck *domain.Deck) error

	// Update modifies the title, description and tags of an existing deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// TouchLastStudied records that the deck was studied at t.
	// Returns ErrDeckNotFound if the deck does not exist.
	TouchLastStudied(ctx context.Context, id uuid.UUID, t time.Time) error

	// Delete removes a deck together with its cards. Study log entries are
	// kept: the log is append-only history.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
