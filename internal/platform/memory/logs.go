package memory

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
)

type logStore struct{ v *view }

var _ store.StudyLogStore = (*logStore)(nil)

func (s *logStore) Append(ctx context.Context, entry *domain.StudyLogEntry) error {
	if entry.ID == uuid.Nil || entry.CardID == uuid.Nil || entry.DeckID == uuid.Nil {
		return fmt.Errorf("%w: study log entry ids must be set", store.ErrInvalidEntity)
	}
	return s.v.write(func(st *domain.AppState) error {
		st.StudyLogs = append(st.StudyLogs, *entry)
		return nil
	})
}

func (s *logStore) List(ctx context.Context, deckID *uuid.UUID) ([]domain.StudyLogEntry, error) {
	var out []domain.StudyLogEntry
	err := s.v.read(func(st *domain.AppState) error {
		out = make([]domain.StudyLogEntry, 0, len(st.StudyLogs))
		for _, l := range st.StudyLogs {
			if deckID == nil || l.DeckID == *deckID {
				out = append(out, l)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b domain.StudyLogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, err
}

// WithTx returns the same store: memory units of work go through Store.InTx.
func (s *logStore) WithTx(*sql.Tx) store.StudyLogStore { return s }
