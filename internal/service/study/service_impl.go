package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/dates"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/domain/srs"
	"github.com/phrazzld/neurodeck/internal/events"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// Verify interface compliance at compile time
var _ StudyService = (*Service)(nil)

// Service implements the StudyService interface.
type Service struct {
	backend    store.Backend
	srsService srs.Service
	clock      dates.Clock
	emitter    events.EventEmitter
	cache      *StatsCache
	logger     *slog.Logger
}

// NewService creates a new study Service. A nil clock reads the wall clock.
// A nil emitter is replaced by an in-memory emitter that only feeds the
// service's stats cache.
func NewService(
	backend store.Backend,
	srsService srs.Service,
	clock dates.Clock,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*Service, error) {
	if backend == nil {
		return nil, domain.NewValidationError("backend", "cannot be nil", domain.ErrValidation)
	}
	if srsService == nil {
		return nil, domain.NewValidationError("srsService", "cannot be nil", domain.ErrValidation)
	}
	if clock == nil {
		clock = dates.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		backend:    backend,
		srsService: srsService,
		clock:      clock,
		emitter:    emitter,
		logger:     logger.With(slog.String("component", "study_service")),
	}
	s.cache = newStatsCache(s.summarizeLogs, logger)
	if emitter == nil {
		internal := events.NewInMemoryEventEmitter(logger)
		internal.RegisterHandler(s.cache)
		s.emitter = internal
	}
	return s, nil
}

// StatsCache returns the cache holding log-derived statistics. Register it
// with the event emitter so that answers refresh it.
func (s *Service) StatsCache() *StatsCache {
	return s.cache
}

// Queue implements StudyService.Queue
func (s *Service) Queue(ctx context.Context, deckID uuid.UUID, maxSize int) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.backend.Stores().Cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, s.storeError(log, "queue", deckID, err)
	}

	size := s.srsService.QueueSize(maxSize)
	queue := s.srsService.BuildQueue(cards, s.clock.Now(), size)

	log.Debug("built study queue",
		slog.String("deck_id", deckID.String()),
		slog.Int("deck_size", len(cards)),
		slog.Int("max_size", size),
		slog.Int("queue_size", len(queue)))
	return queue, nil
}

// SubmitAnswer implements StudyService.SubmitAnswer
func (s *Service) SubmitAnswer(
	ctx context.Context,
	deckID, cardID uuid.UUID,
	known bool,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review answer",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("known", known))

	now := s.clock.Now()
	var result AnswerResult
	err := s.backend.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		card, err := st.Cards.GetForUpdate(ctx, deckID, cardID)
		if err != nil {
			if store.IsNotFoundError(err) {
				log.Warn("card not found for review",
					slog.String("deck_id", deckID.String()),
					slog.String("card_id", cardID.String()))
				return fmt.Errorf("%w: %w", ErrCardNotFound, err)
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		next, entry, err := s.srsService.ApplyResponse(*card, known, now)
		if err != nil {
			log.Error("failed to calculate next review",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()))
			return fmt.Errorf("failed to calculate next review: %w", err)
		}
		entry.ID = uuid.New()

		if err := st.Cards.Update(ctx, &next); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		if err := st.Logs.Append(ctx, &entry); err != nil {
			return fmt.Errorf("failed to append study log: %w", err)
		}
		if err := st.Decks.TouchLastStudied(ctx, deckID, now); err != nil {
			return fmt.Errorf("failed to update deck: %w", err)
		}

		result = AnswerResult{Card: next, Entry: entry}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, NewSubmitAnswerError("card not found", err)
		}
		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitAnswerError("failed to record answer", err)
	}

	s.emitReviewRecorded(ctx, log, result)

	log.Debug("successfully processed review answer",
		slog.String("card_id", cardID.String()),
		slog.Bool("known", known),
		slog.Float64("ease_factor", result.Card.EaseFactor),
		slog.Int("interval", result.Card.Interval),
		slog.Time("next_review", *result.Card.NextReview))

	return &result, nil
}

// emitReviewRecorded publishes the answer. The answer is already persisted,
// so emission failures are logged and not returned.
func (s *Service) emitReviewRecorded(ctx context.Context, log *slog.Logger, result AnswerResult) {
	event, err := events.NewReviewRecordedEvent(events.ReviewRecorded{
		EntryID:    result.Entry.ID,
		DeckID:     result.Entry.DeckID,
		CardID:     result.Entry.CardID,
		Known:      result.Entry.Known,
		Interval:   result.Card.Interval,
		EaseFactor: result.Card.EaseFactor,
		ReviewedAt: result.Entry.Timestamp,
	})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Warn("failed to emit review event",
			slog.String("error", err.Error()),
			slog.String("card_id", result.Entry.CardID.String()))
	}
}

// DueCount implements StudyService.DueCount
func (s *Service) DueCount(ctx context.Context, deckID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.backend.Stores().Cards.ListByDeck(ctx, deckID)
	if err != nil {
		return 0, s.storeError(log, "due_count", deckID, err)
	}
	return srs.CountDue(cards, s.clock.Now()), nil
}

// Stats implements StudyService.Stats
// Card counts are computed on every call; retention, streak and review
// totals come from the stats cache.
func (s *Service) Stats(ctx context.Context, deckID *uuid.UUID) (*domain.StudyStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards(ctx, deckID)
	if err != nil {
		return nil, s.storeError(log, "stats", derefID(deckID), err)
	}

	now := s.clock.Now()
	summary, err := s.cache.get(ctx, deckID, dates.DateKey(now))
	if err != nil {
		return nil, s.storeError(log, "stats", derefID(deckID), err)
	}

	stats := s.srsService.Summarize(cards, nil, now)
	summary.apply(&stats)
	return &stats, nil
}

// RetentionSeries implements StudyService.RetentionSeries
func (s *Service) RetentionSeries(ctx context.Context, deckID *uuid.UUID) ([]domain.RetentionPoint, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	logs, err := s.backend.Stores().Logs.List(ctx, deckID)
	if err != nil {
		return nil, s.storeError(log, "retention_series", derefID(deckID), err)
	}
	return srs.WeeklyRetention(logs, s.clock.Now()), nil
}

// Activity implements StudyService.Activity
func (s *Service) Activity(ctx context.Context) ([]domain.ActivityDay, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	logs, err := s.backend.Stores().Logs.List(ctx, nil)
	if err != nil {
		return nil, s.storeError(log, "activity", uuid.Nil, err)
	}
	return srs.DailyActivity(logs, s.clock.Now()), nil
}

// Progress implements StudyService.Progress
func (s *Service) Progress(ctx context.Context, deckID uuid.UUID) ([]CardProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stores := s.backend.Stores()
	cards, err := stores.Cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, s.storeError(log, "progress", deckID, err)
	}
	logs, err := stores.Logs.List(ctx, &deckID)
	if err != nil {
		return nil, s.storeError(log, "progress", deckID, err)
	}

	out := make([]CardProgress, len(cards))
	for i, c := range cards {
		out[i] = CardProgress{
			CardID:     c.ID,
			Front:      c.Front,
			Mastery:    srs.MasteryLevel(c),
			Retention:  srs.CardRetention(c, logs),
			Interval:   c.Interval,
			NextReview: c.NextReview,
		}
	}
	return out, nil
}

// cards returns the cards of one deck, or of every deck when deckID is nil.
func (s *Service) cards(ctx context.Context, deckID *uuid.UUID) ([]domain.Card, error) {
	stores := s.backend.Stores()
	if deckID != nil {
		return stores.Cards.ListByDeck(ctx, *deckID)
	}

	decks, err := stores.Decks.List(ctx)
	if err != nil {
		return nil, err
	}
	var cards []domain.Card
	for _, d := range decks {
		cards = append(cards, d.Cards...)
	}
	return cards, nil
}

// summarizeLogs computes the log-derived statistics for the cache.
func (s *Service) summarizeLogs(ctx context.Context, deckID *uuid.UUID) (logSummary, error) {
	logs, err := s.backend.Stores().Logs.List(ctx, deckID)
	if err != nil {
		return logSummary{}, err
	}
	return newLogSummary(logs, s.clock.Now(), s.srsService), nil
}

func (s *Service) storeError(log *slog.Logger, op string, deckID uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		log.Debug("deck not found",
			slog.String("operation", op),
			slog.String("deck_id", deckID.String()))
		return NewServiceError(op, "deck not found", fmt.Errorf("%w: %w", ErrDeckNotFound, err))
	}
	log.Error("study operation failed",
		slog.String("operation", op),
		slog.String("deck_id", deckID.String()),
		slog.String("error", err.Error()))
	return NewServiceError(op, "failed to load study data", err)
}

func derefID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
