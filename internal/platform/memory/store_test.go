package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDeck(t *testing.T, s store.Stores, title string, cards int) *domain.Deck {
	t.Helper()
	ctx := context.Background()

	deck, err := domain.NewDeck(title, "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Decks.Create(ctx, deck))

	batch := make([]*domain.Card, 0, cards)
	for i := 0; i < cards; i++ {
		c, err := domain.NewCard(deck.ID, "front", "back", nil)
		require.NoError(t, err)
		batch = append(batch, c)
	}
	require.NoError(t, s.Cards.CreateMultiple(ctx, batch))

	got, err := s.Decks.Get(ctx, deck.ID)
	require.NoError(t, err)
	return got
}

func TestDeckStoreCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := NewStore(nil)
	s := mem.Stores()

	deck := seedDeck(t, s, "Neuroscience", 2)
	assert.Len(t, deck.Cards, 2)
	assert.True(t, mem.Dirty())

	assert.ErrorIs(t, s.Decks.Create(ctx, deck), store.ErrDeckExists)

	deck.Title = "Neuroscience Basics"
	deck.Tags = []string{"brain"}
	require.NoError(t, s.Decks.Update(ctx, deck))

	studied := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Decks.TouchLastStudied(ctx, deck.ID, studied))

	got, err := s.Decks.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neuroscience Basics", got.Title)
	assert.Equal(t, []string{"brain"}, got.Tags)
	require.NotNil(t, got.LastStudied)
	assert.Equal(t, studied, *got.LastStudied)

	decks, err := s.Decks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 1)

	require.NoError(t, s.Decks.Delete(ctx, deck.ID))
	_, err = s.Decks.Get(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.ErrorIs(t, s.Decks.Delete(ctx, deck.ID), store.ErrDeckNotFound)
	assert.ErrorIs(t, s.Decks.Update(ctx, deck), store.ErrDeckNotFound)
}

func TestDeckStoreRejectsInvalidDeck(t *testing.T) {
	t.Parallel()
	s := NewStore(nil).Stores()

	err := s.Decks.Create(context.Background(), &domain.Deck{ID: uuid.New()})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(nil).Stores()
	deck := seedDeck(t, s, "Copies", 1)

	deck.Cards[0].Front = "mutated"
	deck.Title = "mutated"

	got, err := s.Decks.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copies", got.Title)
	assert.Equal(t, "front", got.Cards[0].Front)
}

func TestCardStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(nil).Stores()
	deck := seedDeck(t, s, "Spanish", 3)
	card := deck.Cards[1]

	got, err := s.Cards.Get(ctx, deck.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	_, err = s.Cards.Get(ctx, uuid.New(), card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	got.Front = "hola"
	got.Interval = 6
	got.ReviewCount = 2
	got.CorrectCount = 2
	require.NoError(t, s.Cards.Update(ctx, got))

	cards, err := s.Cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "hola", cards[1].Front, "collection order is kept")
	assert.Equal(t, 6, cards[1].Interval)

	bad := *got
	bad.CorrectCount = 5
	assert.ErrorIs(t, s.Cards.Update(ctx, &bad), store.ErrInvalidEntity)

	require.NoError(t, s.Cards.Delete(ctx, deck.ID, card.ID))
	assert.ErrorIs(t, s.Cards.Delete(ctx, deck.ID, card.ID), store.ErrCardNotFound)

	_, err = s.Cards.ListByDeck(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestCardStoreCreateMultipleIsAllOrNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(nil).Stores()
	deck := seedDeck(t, s, "Batch", 1)

	fresh, err := domain.NewCard(deck.ID, "q", "a", nil)
	require.NoError(t, err)
	existing := deck.Cards[0]

	err = s.Cards.CreateMultiple(ctx, []*domain.Card{fresh, &existing})
	assert.ErrorIs(t, err, store.ErrCardExists)

	cards, err := s.Cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	orphan, err := domain.NewCard(uuid.New(), "q", "a", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Cards.CreateMultiple(ctx, []*domain.Card{orphan}), store.ErrDeckNotFound)
}

func TestStudyLogStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(nil).Stores()
	deckA, deckB := uuid.New(), uuid.New()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	entries := []domain.StudyLogEntry{
		{ID: uuid.New(), DeckID: deckA, CardID: uuid.New(), Timestamp: base.Add(2 * time.Hour), Known: true},
		{ID: uuid.New(), DeckID: deckB, CardID: uuid.New(), Timestamp: base.Add(time.Hour), Known: false},
		{ID: uuid.New(), DeckID: deckA, CardID: uuid.New(), Timestamp: base, Known: true},
	}
	for i := range entries {
		require.NoError(t, s.Logs.Append(ctx, &entries[i]))
	}

	all, err := s.Logs.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.StudyLogEntry{entries[2], entries[1], entries[0]}, all)

	onlyA, err := s.Logs.List(ctx, &deckA)
	require.NoError(t, err)
	assert.Equal(t, []domain.StudyLogEntry{entries[2], entries[0]}, onlyA)

	err = s.Logs.Append(ctx, &domain.StudyLogEntry{DeckID: deckA, CardID: uuid.New()})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestInTxCommitsOnSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := NewStore(nil)
	deck := seedDeck(t, mem.Stores(), "Tx", 1)
	mem.MarkClean()

	err := mem.InTx(ctx, func(ctx context.Context, s store.Stores) error {
		card := deck.Cards[0]
		card.ReviewCount = 1
		card.CorrectCount = 1
		if err := s.Cards.Update(ctx, &card); err != nil {
			return err
		}
		return s.Logs.Append(ctx, &domain.StudyLogEntry{
			ID: uuid.New(), DeckID: deck.ID, CardID: card.ID, Timestamp: time.Now(), Known: true,
		})
	})
	require.NoError(t, err)
	assert.True(t, mem.Dirty())

	snap := mem.Snapshot()
	assert.Equal(t, 1, snap.Decks[0].Cards[0].ReviewCount)
	assert.Len(t, snap.StudyLogs, 1)
}

func TestInTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := NewStore(nil)
	deck := seedDeck(t, mem.Stores(), "Tx", 1)
	mem.MarkClean()
	boom := errors.New("boom")

	err := mem.InTx(ctx, func(ctx context.Context, s store.Stores) error {
		card := deck.Cards[0]
		card.ReviewCount = 1
		if err := s.Cards.Update(ctx, &card); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mem.Dirty())

	cards, err := mem.Stores().Cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cards[0].ReviewCount)
}

func TestSnapshotAndSettings(t *testing.T) {
	t.Parallel()
	initial := domain.NewAppState()
	mem := NewStore(initial)

	// The store owns its own copy.
	initial.Settings.Theme = domain.ThemeLight
	assert.Equal(t, domain.ThemeDark, mem.Settings().Theme)

	require.NoError(t, mem.UpdateSettings(domain.Settings{Theme: domain.ThemeLight, CardAnimationSpeed: domain.AnimationFast}))
	assert.Equal(t, domain.ThemeLight, mem.Snapshot().Settings.Theme)

	err := mem.UpdateSettings(domain.Settings{Theme: "neon", CardAnimationSpeed: domain.AnimationFast})
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}
