package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// StudyLogStore defines the interface for the append-only study log.
type StudyLogStore interface {
	// Append records one review response. Entries are never updated.
	Append(ctx context.Context, entry *domain.StudyLogEntry) error

	// List returns log entries in chronological order. A nil deckID returns
	// the entries of every deck.
	List(ctx context.Context, deckID *uuid.UUID) ([]domain.StudyLogEntry, error)

	// WithTx returns a StudyLogStore bound to the given transaction.
	WithTx(tx *sql.Tx) StudyLogStore
}

// StateStore persists the whole application state as a single document
// under a key, the way the local tools keep their data.
type StateStore interface {
	// Load returns the state saved under key.
	// Returns ErrStateNotFound if nothing was saved yet.
	Load(ctx context.Context, key string) (*domain.AppState, error)

	// Save replaces the state stored under key.
	Save(ctx context.Context, key string, state *domain.AppState) error
}
