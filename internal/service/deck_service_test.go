package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/memory"
	"github.com/phrazzld/neurodeck/internal/service"
	"github.com/phrazzld/neurodeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeckService(t *testing.T) (service.DeckService, *memory.Store) {
	t.Helper()
	backend := memory.NewStore(nil)
	svc, err := service.NewDeckService(backend, nil)
	require.NoError(t, err)
	return svc, backend
}

func TestNewDeckServiceRequiresBackend(t *testing.T) {
	t.Parallel()

	_, err := service.NewDeckService(nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeckServiceCreateAndGet(t *testing.T) {
	t.Parallel()
	svc, backend := newDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, service.DeckInput{
		Title:       "Capitals",
		Description: "European capitals",
		Tags:        []string{"geo"},
		Cards: []service.CardInput{
			{Front: "France", Back: "Paris"},
			{Front: "Spain", Back: "Madrid"},
		},
	})
	require.NoError(t, err)
	require.Len(t, deck.Cards, 2)
	assert.True(t, backend.Dirty())

	got, err := svc.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", got.Title)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "France", got.Cards[0].Front)
	assert.Equal(t, "Madrid", got.Cards[1].Back)

	for _, c := range got.Cards {
		assert.Equal(t, domain.DefaultInterval, c.Interval)
		assert.Equal(t, domain.DefaultEaseFactor, c.EaseFactor)
		assert.Zero(t, c.ReviewCount)
		assert.Nil(t, c.NextReview)
	}

	decks, err := svc.ListDecks(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 1)
}

func TestDeckServiceCreateDeckIsAtomic(t *testing.T) {
	t.Parallel()
	svc, _ := newDeckService(t)
	ctx := context.Background()

	_, err := svc.CreateDeck(ctx, service.DeckInput{
		Title: "Broken",
		Cards: []service.CardInput{{Front: "ok", Back: "ok"}, {Front: "", Back: "missing front"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var serr *service.DeckServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "create_deck", serr.Operation)

	decks, err := svc.ListDecks(ctx)
	require.NoError(t, err)
	assert.Empty(t, decks)
}

func TestDeckServiceUpdateDeck(t *testing.T) {
	t.Parallel()
	svc, _ := newDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, service.DeckInput{Title: "Old", Tags: []string{"a"}})
	require.NoError(t, err)

	updated, err := svc.UpdateDeck(ctx, deck.ID, service.DeckInput{Title: "New", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, []string{"a"}, updated.Tags, "nil tags keep the current tags")

	_, err = svc.UpdateDeck(ctx, deck.ID, service.DeckInput{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	_, err = svc.UpdateDeck(ctx, uuid.New(), service.DeckInput{Title: "x"})
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestDeckServiceCards(t *testing.T) {
	t.Parallel()
	svc, _ := newDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, service.DeckInput{Title: "Verbs"})
	require.NoError(t, err)

	card, err := svc.AddCard(ctx, deck.ID, service.CardInput{Front: "ir", Back: "to go"})
	require.NoError(t, err)
	assert.Equal(t, deck.ID, card.DeckID)
	assert.NotEqual(t, uuid.Nil, card.ID)

	updated, err := svc.UpdateCard(ctx, deck.ID, card.ID, service.CardInput{
		Front: "ir",
		Back:  "to go (irregular)",
		Tags:  []string{"irregular"},
	})
	require.NoError(t, err)
	assert.Equal(t, "to go (irregular)", updated.Back)
	assert.Equal(t, card.EaseFactor, updated.EaseFactor)
	assert.Equal(t, card.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateCard(ctx, deck.ID, card.ID, service.CardInput{Front: "ir", Back: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddCard(ctx, uuid.New(), service.CardInput{Front: "a", Back: "b"})
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	require.NoError(t, svc.DeleteCard(ctx, deck.ID, card.ID))
	assert.ErrorIs(t, svc.DeleteCard(ctx, deck.ID, card.ID), store.ErrCardNotFound)

	got, err := svc.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Cards)
}

func TestDeckServiceImport(t *testing.T) {
	t.Parallel()
	svc, _ := newDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, service.DeckInput{Title: "Imported"})
	require.NoError(t, err)

	_, err = svc.Import(ctx, deck.ID, nil)
	assert.ErrorIs(t, err, service.ErrEmptyImport)

	cards, err := svc.Import(ctx, deck.ID, []service.CardInput{
		{Front: "1", Back: "one"},
		{Front: "2", Back: "two"},
		{Front: "3", Back: "three"},
	})
	require.NoError(t, err)
	assert.Len(t, cards, 3)

	got, err := svc.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, got.Cards, 3)
	assert.Equal(t, "3", got.Cards[2].Front)
}

func TestDeckServiceDeleteDeckKeepsHistory(t *testing.T) {
	t.Parallel()
	svc, backend := newDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, service.DeckInput{
		Title: "Temp",
		Cards: []service.CardInput{{Front: "q", Back: "a"}},
	})
	require.NoError(t, err)

	entry := domain.StudyLogEntry{ID: uuid.New(), DeckID: deck.ID, CardID: deck.Cards[0].ID, Known: true}
	require.NoError(t, backend.Stores().Logs.Append(ctx, &entry))

	require.NoError(t, svc.DeleteDeck(ctx, deck.ID))
	assert.ErrorIs(t, svc.DeleteDeck(ctx, deck.ID), store.ErrDeckNotFound)

	_, err = svc.GetDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	logs, err := backend.Stores().Logs.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
