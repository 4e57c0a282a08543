package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyLogEntry is an immutable record of one review response. The log is
// append-only: entries are never updated or deleted once written.
type StudyLogEntry struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	CardID    uuid.UUID `json:"card_id"`
	Timestamp time.Time `json:"timestamp"`
	Known     bool      `json:"known"`
}

// Timestamps returns the timestamp of every entry, in log order.
func Timestamps(logs []StudyLogEntry) []time.Time {
	out := make([]time.Time, len(logs))
	for i, l := range logs {
		out[i] = l.Timestamp
	}
	return out
}
