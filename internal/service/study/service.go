// Package study implements the study session use cases: building the review
// queue, recording answers and reporting progress.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
)

// AnswerResult is the outcome of a recorded answer: the card's new
// scheduling state and the log entry appended for it.
type AnswerResult struct {
	Card  domain.Card          `json:"card"`
	Entry domain.StudyLogEntry `json:"entry"`
}

// CardProgress describes how well one card is learned.
type CardProgress struct {
	CardID     uuid.UUID  `json:"card_id"`
	Front      string     `json:"front"`
	Mastery    int        `json:"mastery"`   // 0-100
	Retention  int        `json:"retention"` // 0-100
	Interval   int        `json:"interval"`
	NextReview *time.Time `json:"next_review,omitempty"`
}

// StudyService provides the operations behind a study session and the
// progress pages.
type StudyService interface {
	// Queue returns the cards to study in a deck: due cards by urgency, then
	// new cards. A maxSize of 0 selects the configured default size.
	Queue(ctx context.Context, deckID uuid.UUID, maxSize int) ([]domain.Card, error)

	// SubmitAnswer records a known or unknown response for a card.
	//
	// The updated card, the new log entry and the deck's last-studied time are
	// written in one unit of work, then a review.recorded event is emitted.
	//
	// Returns:
	//   - ErrCardNotFound (wrapping store.ErrCardNotFound) if the card is not in the deck
	//   - a ServiceError wrapping the cause for any other failure
	SubmitAnswer(ctx context.Context, deckID, cardID uuid.UUID, known bool) (*AnswerResult, error)

	// DueCount returns the number of cards in a deck that are due now.
	DueCount(ctx context.Context, deckID uuid.UUID) (int, error)

	// Stats summarizes progress for one deck, or for every deck when deckID is nil.
	Stats(ctx context.Context, deckID *uuid.UUID) (*domain.StudyStats, error)

	// RetentionSeries returns the daily retention of the past seven days.
	RetentionSeries(ctx context.Context, deckID *uuid.UUID) ([]domain.RetentionPoint, error)

	// Activity returns the daily review counts of the activity calendar.
	Activity(ctx context.Context) ([]domain.ActivityDay, error)

	// Progress returns the mastery and retention of every card in a deck.
	Progress(ctx context.Context, deckID uuid.UUID) ([]CardProgress, error)
}

// Common error types for StudyService
var (
	// ErrCardNotFound indicates that the card does not exist in the deck.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")
)

// ServiceError wraps errors from the study service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "queue", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a new ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return NewServiceError("submit_answer", message, err)
}
