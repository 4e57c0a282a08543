package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// PostgresStudyLogStore implements the store.StudyLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudyLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyLogStore creates a new PostgreSQL implementation of the StudyLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudyLogStore(db store.DBTX, logger *slog.Logger) *PostgresStudyLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_log_store")),
	}
}

// Ensure PostgresStudyLogStore implements store.StudyLogStore interface
var _ store.StudyLogStore = (*PostgresStudyLogStore)(nil)

// Append implements store.StudyLogStore.Append
func (s *PostgresStudyLogStore) Append(ctx context.Context, entry *domain.StudyLogEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if entry.ID == uuid.Nil || entry.CardID == uuid.Nil || entry.DeckID == uuid.Nil {
		return fmt.Errorf("%w: study log entry requires id, card id and deck id", store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO study_logs (id, deck_id, card_id, known, reviewed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.DeckID, entry.CardID, entry.Known, entry.Timestamp)
	if err != nil {
		log.Error("failed to append study log entry",
			slog.String("error", err.Error()),
			slog.String("card_id", entry.CardID.String()))
		return MapError(err)
	}

	log.Debug("study log entry appended",
		slog.String("entry_id", entry.ID.String()),
		slog.String("card_id", entry.CardID.String()),
		slog.Bool("known", entry.Known))
	return nil
}

// List implements store.StudyLogStore.List
func (s *PostgresStudyLogStore) List(ctx context.Context, deckID *uuid.UUID) ([]domain.StudyLogEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, deck_id, card_id, known, reviewed_at FROM study_logs`
	var args []any
	if deckID != nil {
		query += ` WHERE deck_id = $1`
		args = append(args, *deckID)
	}
	query += ` ORDER BY reviewed_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list study log", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	logs := []domain.StudyLogEntry{}
	for rows.Next() {
		var e domain.StudyLogEntry
		if err := rows.Scan(&e.ID, &e.DeckID, &e.CardID, &e.Known, &e.Timestamp); err != nil {
			return nil, MapError(err)
		}
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return logs, nil
}

// WithTx implements store.StudyLogStore.WithTx
func (s *PostgresStudyLogStore) WithTx(tx *sql.Tx) store.StudyLogStore {
	return &PostgresStudyLogStore{
		db:     tx,
		logger: s.logger,
	}
}
