package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// CreateMultiple implements store.CardStore.CreateMultiple
// Every card is validated before the first insert. Cards keep the order of
// the slice within their deck.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if card == nil {
			return fmt.Errorf("%w: nil card", store.ErrInvalidEntity)
		}
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during create",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	const query = `
		INSERT INTO cards (id, deck_id, front, back, tags, created_at, last_reviewed, next_review,
			interval_days, ease_factor, review_count, correct_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, card := range cards {
		tags, err := encodeTags(card.Tags)
		if err != nil {
			return err
		}

		_, err = s.db.ExecContext(ctx, query,
			card.ID,
			card.DeckID,
			card.Front,
			card.Back,
			tags,
			card.CreatedAt,
			nullTime(card.LastReviewed),
			nullTime(card.NextReview),
			card.Interval,
			card.EaseFactor,
			card.ReviewCount,
			card.CorrectCount,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("card references missing deck",
					slog.String("card_id", card.ID.String()),
					slog.String("deck_id", card.DeckID.String()))
			} else {
				log.Error("failed to create card",
					slog.String("error", err.Error()),
					slog.String("card_id", card.ID.String()))
			}
			return MapError(err)
		}
	}

	log.Info("cards created successfully",
		slog.Int("count", len(cards)),
		slog.String("deck_id", cards[0].DeckID.String()))
	return nil
}

// ListByDeck implements store.CardStore.ListByDeck
// Returns store.ErrDeckNotFound when the deck itself is missing.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM decks WHERE id = $1)`, deckID).Scan(&exists)
	if err != nil {
		log.Error("failed to check deck existence",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}
	if !exists {
		return nil, store.ErrDeckNotFound
	}

	return listCards(ctx, s.db, deckID)
}

// listCards returns the cards of one deck in collection order.
func listCards(ctx context.Context, db store.DBTX, deckID uuid.UUID) ([]domain.Card, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE deck_id = $1
		ORDER BY position
	`, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// Get implements store.CardStore.Get
func (s *PostgresCardStore) Get(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	return s.get(ctx, deckID, cardID, false)
}

// GetForUpdate implements store.CardStore.GetForUpdate
// It must run inside a transaction for the row lock to have any effect.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	return s.get(ctx, deckID, cardID, true)
}

func (s *PostgresCardStore) get(ctx context.Context, deckID, cardID uuid.UUID, lock bool) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1 AND deck_id = $2
	`
	if lock {
		query += ` FOR UPDATE`
	}

	card, err := scanCard(s.db.QueryRowContext(ctx, query, cardID, deckID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found",
				slog.String("card_id", cardID.String()),
				slog.String("deck_id", deckID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.CardStore.Update
// It writes both the content and the scheduling state.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(card.Tags)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards
		SET front = $1, back = $2, tags = $3, last_reviewed = $4, next_review = $5,
			interval_days = $6, ease_factor = $7, review_count = $8, correct_count = $9
		WHERE id = $10 AND deck_id = $11
	`,
		card.Front,
		card.Back,
		tags,
		nullTime(card.LastReviewed),
		nullTime(card.NextReview),
		card.Interval,
		card.EaseFactor,
		card.ReviewCount,
		card.CorrectCount,
		card.ID,
		card.DeckID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card updated successfully",
		slog.String("card_id", card.ID.String()),
		slog.Int("interval", card.Interval))
	return nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = $1 AND deck_id = $2`, cardID, deckID)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card deleted successfully",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
