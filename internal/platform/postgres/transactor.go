package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/neurodeck/internal/store"
)

// Transactor runs units of work inside a database transaction, handing the
// callback stores bound to that transaction.
type Transactor struct {
	db    *sql.DB
	decks *PostgresDeckStore
	cards *PostgresCardStore
	logs  *PostgresStudyLogStore
}

// NewTransactor creates a Transactor and the stores it binds to transactions.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	return &Transactor{
		db:    db,
		decks: NewPostgresDeckStore(db, logger),
		cards: NewPostgresCardStore(db, logger),
		logs:  NewPostgresStudyLogStore(db, logger),
	}
}

// Ensure Transactor implements store.Backend interface
var _ store.Backend = (*Transactor)(nil)

// Stores returns stores that run each call in its own implicit transaction.
func (t *Transactor) Stores() store.Stores {
	return store.Stores{
		Decks: t.decks,
		Cards: t.cards,
		Logs:  t.logs,
	}
}

// InTx implements store.Transactor.InTx
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Decks: t.decks.WithTx(tx),
			Cards: t.cards.WithTx(tx),
			Logs:  t.logs.WithTx(tx),
		})
	})
}
