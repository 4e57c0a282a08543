package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// Request bodies for decks and cards are service.DeckInput and
// service.CardInput; their validate tags are checked before the service call.

// AnswerRequest defines the payload for recording a study response.
// Known is a pointer so a missing field fails validation instead of
// silently meaning "unknown".
type AnswerRequest struct {
	Known *bool `json:"known" validate:"required"`
}

// ImportRequest defines the payload for importing markdown cards into a deck.
type ImportRequest struct {
	Markdown string `json:"markdown" validate:"required,max=1048576"`
}

// QueueResponse is the study queue of a deck.
type QueueResponse struct {
	DeckID uuid.UUID     `json:"deck_id"`
	Cards  []domain.Card `json:"cards"`
}

// DueCountResponse is the number of due cards in a deck.
type DueCountResponse struct {
	DeckID uuid.UUID `json:"deck_id"`
	Due    int       `json:"due"`
}

// ImportResponse lists the cards added by an import.
type ImportResponse struct {
	DeckID   uuid.UUID     `json:"deck_id"`
	Imported int           `json:"imported"`
	Cards    []domain.Card `json:"cards"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
