package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// Store holds one AppState and hands out store views over it.
type Store struct {
	mu    sync.Mutex
	state *domain.AppState
	dirty bool
}

// NewStore creates a Store owning a deep copy of state. A nil state starts empty.
func NewStore(state *domain.AppState) *Store {
	if state == nil {
		state = domain.NewAppState()
	}
	return &Store{state: state.Clone()}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dirty reports whether the state changed since the Store was created or
// MarkClean was last called.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkClean resets the Dirty flag, typically after the snapshot was saved.
func (s *Store) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// Settings returns the stored presentation settings.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// UpdateSettings validates and stores new presentation settings.
func (s *Store) UpdateSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings = settings
	s.dirty = true
	return nil
}

// Stores returns store views that lock the Store on every call.
func (s *Store) Stores() store.Stores {
	v := &view{owner: s}
	return store.Stores{
		Decks: &deckStore{v},
		Cards: &cardStore{v},
		Logs:  &logStore{v},
	}
}

// InTx runs fn against a private copy of the state while holding the lock.
// The copy replaces the state only if fn returns nil, so a failed unit of
// work leaves no partial changes behind.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st store.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.Clone()
	v := &view{owner: s, tx: work}
	err := fn(ctx, store.Stores{
		Decks: &deckStore{v},
		Cards: &cardStore{v},
		Logs:  &logStore{v},
	})
	if err != nil {
		logger.FromContext(ctx).Debug("discarding in-memory unit of work",
			slog.String("component", "memory_store"),
			slog.String("error", err.Error()))
		return err
	}

	s.state = work
	s.dirty = true
	return nil
}

var _ store.Backend = (*Store)(nil)

// view routes store calls either to the locked owner state or, inside InTx,
// to the unit-of-work copy whose lock is already held.
type view struct {
	owner *Store
	tx    *domain.AppState
}

func (v *view) read(fn func(st *domain.AppState) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.owner.mu.Lock()
	defer v.owner.mu.Unlock()
	return fn(v.owner.state)
}

func (v *view) write(fn func(st *domain.AppState) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.owner.mu.Lock()
	defer v.owner.mu.Unlock()
	if err := fn(v.owner.state); err != nil {
		return err
	}
	v.owner.dirty = true
	return nil
}

func deckAt(st *domain.AppState, id uuid.UUID) (*domain.Deck, error) {
	i := st.DeckIndex(id)
	if i < 0 {
		return nil, store.ErrDeckNotFound
	}
	return &st.Decks[i], nil
}
