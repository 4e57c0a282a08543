package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// List implements store.DeckStore.List
// Decks are returned oldest first, each with its cards in collection order.
func (s *PostgresDeckStore) List(ctx context.Context) ([]domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+deckColumns+`
		FROM decks
		ORDER BY created_at, id
	`)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	decks := []domain.Deck{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		index[deck.ID] = len(decks)
		decks = append(decks, *deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	if len(decks) == 0 {
		return decks, nil
	}

	cardRows, err := s.db.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		ORDER BY deck_id, position
	`)
	if err != nil {
		log.Error("failed to list cards for decks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = cardRows.Close() }()

	for cardRows.Next() {
		card, err := scanCard(cardRows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		if i, ok := index[card.DeckID]; ok {
			decks[i].Cards = append(decks[i].Cards, *card)
		}
	}
	if err := cardRows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed decks", slog.Int("count", len(decks)))
	return decks, nil
}

// Get implements store.DeckStore.Get
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving deck by ID", slog.String("deck_id", id.String()))

	deck, err := scanDeck(s.db.QueryRowContext(ctx, `
		SELECT `+deckColumns+`
		FROM decks
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	cards, err := listCards(ctx, s.db, id)
	if err != nil {
		log.Error("failed to load deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, err
	}
	deck.Cards = cards

	return deck, nil
}

// Create implements store.DeckStore.Create
// Returns store.ErrDeckExists if the ID is already taken.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(deck.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decks (id, title, description, tags, created_at, last_studied)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		deck.ID,
		deck.Title,
		deck.Description,
		tags,
		deck.CreatedAt,
		nullTime(deck.LastStudied),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("deck already exists", slog.String("deck_id", deck.ID.String()))
		} else {
			log.Error("failed to create deck",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()))
		}
		return MapError(err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("title", deck.Title))
	return nil
}

// Update implements store.DeckStore.Update
// Only the title, description and tags are written.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(deck.Tags)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE decks
		SET title = $1, description = $2, tags = $3
		WHERE id = $4
	`, deck.Title, deck.Description, tags, deck.ID)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	log.Info("deck updated successfully", slog.String("deck_id", deck.ID.String()))
	return nil
}

// TouchLastStudied implements store.DeckStore.TouchLastStudied
func (s *PostgresDeckStore) TouchLastStudied(ctx context.Context, id uuid.UUID, t time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE decks SET last_studied = $1 WHERE id = $2
	`, t, id)
	if err != nil {
		log.Error("failed to update deck last studied time",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrDeckNotFound)
}

// Delete implements store.DeckStore.Delete
// Cards are removed by the ON DELETE CASCADE constraint; study logs are kept.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		log.Debug("deck not found for deletion", slog.String("deck_id", id.String()))
		return err
	}

	log.Info("deck deleted successfully", slog.String("deck_id", id.String()))
	return nil
}

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}
