package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
)

// DefaultStateKey is the key the application state is saved under.
const DefaultStateKey = "neuroDeckState"

// StateStore implements store.StateStore on the kv_state table.
type StateStore struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

var _ store.StateStore = (*StateStore)(nil)

// NewStateStore creates a StateStore. A nil logger uses slog.Default().
func NewStateStore(db *DB, logger *slog.Logger) *StateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_state_store")),
		now:    time.Now,
	}
}

// Load implements store.StateStore.
func (s *StateStore) Load(ctx context.Context, key string) (*domain.AppState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_state WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrStateNotFound
	}
	if err != nil {
		s.logger.Error("failed to load state", slog.String("key", key), slog.String("error", err.Error()))
		return nil, store.NewStoreError("state", "load", "query failed", err)
	}

	state := domain.NewAppState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, store.NewStoreError("state", "load", "stored document is not valid JSON", err)
	}
	if state.Decks == nil {
		state.Decks = []domain.Deck{}
	}
	if state.StudyLogs == nil {
		state.StudyLogs = []domain.StudyLogEntry{}
	}

	s.logger.Debug("state loaded",
		slog.String("key", key),
		slog.Int("decks", len(state.Decks)),
		slog.Int("study_logs", len(state.StudyLogs)))
	return state, nil
}

// Save implements store.StateStore.
func (s *StateStore) Save(ctx context.Context, key string, state *domain.AppState) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", store.ErrInvalidEntity)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return store.NewStoreError("state", "save", "failed to encode state", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, raw, s.now().UnixMilli())
	if err != nil {
		s.logger.Error("failed to save state", slog.String("key", key), slog.String("error", err.Error()))
		return store.NewStoreError("state", "save", "upsert failed", err)
	}

	s.logger.Debug("state saved", slog.String("key", key), slog.Int("bytes", len(raw)))
	return nil
}

// Delete removes the state saved under key. Deleting a missing key is not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_state WHERE key = ?", key); err != nil {
		return store.NewStoreError("state", "delete", "delete failed", err)
	}
	return nil
}
