package memory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
)

type cardStore struct{ v *view }

var _ store.CardStore = (*cardStore)(nil)

func (s *cardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}
	return s.v.write(func(st *domain.AppState) error {
		// Check everything first so a failure adds nothing.
		seen := make(map[uuid.UUID]struct{}, len(cards))
		for _, c := range cards {
			d, err := deckAt(st, c.DeckID)
			if err != nil {
				return err
			}
			if _, dup := seen[c.ID]; dup || d.CardIndex(c.ID) >= 0 {
				return store.ErrCardExists
			}
			seen[c.ID] = struct{}{}
		}
		for _, c := range cards {
			d, _ := deckAt(st, c.DeckID)
			d.Cards = append(d.Cards, c.Clone())
		}
		return nil
	})
}

func (s *cardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	var out []domain.Card
	err := s.v.read(func(st *domain.AppState) error {
		d, err := deckAt(st, deckID)
		if err != nil {
			return err
		}
		out = make([]domain.Card, len(d.Cards))
		for i, c := range d.Cards {
			out[i] = c.Clone()
		}
		return nil
	})
	return out, err
}

func (s *cardStore) Get(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	var out domain.Card
	err := s.v.read(func(st *domain.AppState) error {
		c, err := cardAt(st, deckID, cardID)
		if err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate is Get: inside InTx the whole state is already locked.
func (s *cardStore) GetForUpdate(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	return s.Get(ctx, deckID, cardID)
}

func (s *cardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.v.write(func(st *domain.AppState) error {
		c, err := cardAt(st, card.DeckID, card.ID)
		if err != nil {
			return err
		}
		*c = card.Clone()
		return nil
	})
}

func (s *cardStore) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	return s.v.write(func(st *domain.AppState) error {
		d, err := deckAt(st, deckID)
		if err != nil {
			return store.ErrCardNotFound
		}
		i := d.CardIndex(cardID)
		if i < 0 {
			return store.ErrCardNotFound
		}
		d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
		return nil
	})
}

// WithTx returns the same store: memory units of work go through Store.InTx.
func (s *cardStore) WithTx(*sql.Tx) store.CardStore { return s }

func cardAt(st *domain.AppState, deckID, cardID uuid.UUID) (*domain.Card, error) {
	i := st.DeckIndex(deckID)
	if i < 0 {
		return nil, store.ErrCardNotFound
	}
	d := &st.Decks[i]
	j := d.CardIndex(cardID)
	if j < 0 {
		return nil, store.ErrCardNotFound
	}
	return &d.Cards[j], nil
}
