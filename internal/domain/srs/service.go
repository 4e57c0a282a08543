package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/neurodeck/internal/domain"
)

// Common errors
var (
	ErrNilParams     = errors.New("srs params cannot be nil")
	ErrInvalidParams = errors.New("invalid srs params")
	ErrInvalidCard   = errors.New("invalid card scheduling state")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// ApplyResponse computes the card's new scheduling state after a known or
	// unknown response and returns the log entry describing the response.
	ApplyResponse(
		card domain.Card,
		known bool,
		now time.Time,
	) (domain.Card, domain.StudyLogEntry, error)

	// BuildQueue returns at most maxSize cards to study, due cards first
	BuildQueue(cards []domain.Card, now time.Time, maxSize int) []domain.Card

	// QueueSize resolves a requested session size, substituting the default for 0
	QueueSize(requested int) int

	// Categorize splits cards into new, learning and mastered
	Categorize(cards []domain.Card) Categories

	// Summarize computes progress statistics for cards and their study log
	Summarize(cards []domain.Card, logs []domain.StudyLogEntry, now time.Time) domain.StudyStats
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrNilParams
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return &defaultService{
		params: params,
	}, nil
}

func validateParams(p *Params) error {
	switch {
	case p.MinEaseFactor <= 0 || p.MaxEaseFactor < p.MinEaseFactor:
		return fmt.Errorf("%w: ease factor range [%.2f, %.2f]", ErrInvalidParams, p.MinEaseFactor, p.MaxEaseFactor)
	case p.SuccessBonus < 0 || p.FailurePenalty < 0:
		return fmt.Errorf("%w: ease adjustments must not be negative", ErrInvalidParams)
	case p.ResetInterval < 1:
		return fmt.Errorf("%w: reset interval must be at least 1", ErrInvalidParams)
	case p.MasteredInterval < 1:
		return fmt.Errorf("%w: mastered interval must be at least 1", ErrInvalidParams)
	case p.StreakScanDays < 0:
		return fmt.Errorf("%w: streak scan days must not be negative", ErrInvalidParams)
	case p.DefaultQueueSize < 1:
		return fmt.Errorf("%w: default queue size must be at least 1", ErrInvalidParams)
	}
	return nil
}

// ApplyResponse implements the Service interface for recording a response
func (s *defaultService) ApplyResponse(
	card domain.Card,
	known bool,
	now time.Time,
) (domain.Card, domain.StudyLogEntry, error) {
	// Validate inputs
	if card.Interval < 1 || card.EaseFactor < s.params.MinEaseFactor || card.EaseFactor > s.params.MaxEaseFactor {
		return domain.Card{}, domain.StudyLogEntry{}, fmt.Errorf(
			"%w: interval %d, ease factor %.2f",
			ErrInvalidCard,
			card.Interval,
			card.EaseFactor,
		)
	}

	// Use the pure calculation function to get the new card state
	next, entry := calculateNextCard(card, known, now, s.params)

	return next, entry, nil
}

// BuildQueue implements the Service interface for building a study session
func (s *defaultService) BuildQueue(cards []domain.Card, now time.Time, maxSize int) []domain.Card {
	return BuildStudyQueue(cards, now, maxSize)
}

// QueueSize implements the Service interface; negative sizes are kept so the
// queue comes back empty.
func (s *defaultService) QueueSize(requested int) int {
	if requested == 0 {
		return s.params.DefaultQueueSize
	}
	return requested
}

// Categorize implements the Service interface using the configured mastered threshold
func (s *defaultService) Categorize(cards []domain.Card) Categories {
	return categorize(cards, s.params)
}

// Summarize implements the Service interface using the configured parameters
func (s *defaultService) Summarize(
	cards []domain.Card,
	logs []domain.StudyLogEntry,
	now time.Time,
) domain.StudyStats {
	return summarize(cards, logs, now, s.params)
}
