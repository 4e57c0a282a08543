package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
)

type deckStore struct{ v *view }

var _ store.DeckStore = (*deckStore)(nil)

func (s *deckStore) List(ctx context.Context) ([]domain.Deck, error) {
	var out []domain.Deck
	err := s.v.read(func(st *domain.AppState) error {
		out = make([]domain.Deck, len(st.Decks))
		for i, d := range st.Decks {
			out[i] = d.Clone()
		}
		return nil
	})
	return out, err
}

func (s *deckStore) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var out domain.Deck
	err := s.v.read(func(st *domain.AppState) error {
		d, err := deckAt(st, id)
		if err != nil {
			return err
		}
		out = d.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *deckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.v.write(func(st *domain.AppState) error {
		if st.DeckIndex(deck.ID) >= 0 {
			return store.ErrDeckExists
		}
		d := deck.Clone()
		d.Cards = []domain.Card{}
		st.Decks = append(st.Decks, d)
		return nil
	})
}

func (s *deckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.v.write(func(st *domain.AppState) error {
		d, err := deckAt(st, deck.ID)
		if err != nil {
			return err
		}
		d.Title = deck.Title
		d.Description = deck.Description
		d.Tags = append([]string{}, deck.Tags...)
		return nil
	})
}

func (s *deckStore) TouchLastStudied(ctx context.Context, id uuid.UUID, t time.Time) error {
	return s.v.write(func(st *domain.AppState) error {
		d, err := deckAt(st, id)
		if err != nil {
			return err
		}
		d.LastStudied = &t
		return nil
	})
}

func (s *deckStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.v.write(func(st *domain.AppState) error {
		i := st.DeckIndex(id)
		if i < 0 {
			return store.ErrDeckNotFound
		}
		st.Decks = append(st.Decks[:i], st.Decks[i+1:]...)
		return nil
	})
}

// WithTx returns the same store: memory units of work go through Store.InTx.
func (s *deckStore) WithTx(*sql.Tx) store.DeckStore { return s }
