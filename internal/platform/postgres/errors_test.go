package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/neurodeck/internal/platform/postgres"
	"github.com/phrazzld/neurodeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "cards",
		ColumnName:     "front",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	tests := []struct {
		name  string
		err   error
		errIs error
	}{
		{name: "no rows", err: sql.ErrNoRows, errIs: store.ErrNotFound},
		{name: "duplicate deck", err: newPgError("23505", "decks_pkey"), errIs: store.ErrDeckExists},
		{name: "duplicate card", err: newPgError("23505", "cards_pkey"), errIs: store.ErrCardExists},
		{name: "card for missing deck", err: newPgError("23503", "cards_deck_id_fkey"), errIs: store.ErrDeckNotFound},
		{name: "other unique violation", err: newPgError("23505", "decks_title_key"), errIs: store.ErrDuplicate},
		{name: "other foreign key violation", err: newPgError("23503", "x_fkey"), errIs: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514", "cards_interval_check"), errIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502", ""), errIs: store.ErrInvalidEntity},
		{
			name:  "wrapped pg error",
			err:   fmt.Errorf("exec: %w", newPgError("23505", "cards_pkey")),
			errIs: store.ErrDuplicate,
		},
		{name: "unmapped error", err: plain, errIs: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tt.err), tt.errIs)
		})
	}

	assert.NoError(t, postgres.MapError(nil))
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505", "")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503", "")))
	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("insert: %w", newPgError("23503", ""))))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("plain")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  sql.Result
		wantErr bool
		errIs   error
	}{
		{name: "nil result", result: nil, wantErr: true},
		{name: "zero rows affected", result: mockResult{rowsAffected: 0}, wantErr: true, errIs: store.ErrDeckNotFound},
		{name: "one row affected", result: mockResult{rowsAffected: 1}},
		{name: "rows affected error", result: mockResult{err: errors.New("driver")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := postgres.CheckRowsAffected(tt.result, store.ErrDeckNotFound)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}
