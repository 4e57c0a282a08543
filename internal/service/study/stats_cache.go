package study

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/dates"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/domain/srs"
	"github.com/phrazzld/neurodeck/internal/events"
)

// logSummary holds the statistics derived from the study log alone.
type logSummary struct {
	day         string // date key the streak was computed for
	reviews     int
	retention   int
	streak      int
	lastStudied *time.Time
}

func newLogSummary(logs []domain.StudyLogEntry, now time.Time, svc srs.Service) logSummary {
	stats := svc.Summarize(nil, logs, now)
	return logSummary{
		day:         dates.DateKey(now),
		reviews:     stats.TotalReviews,
		retention:   stats.Retention,
		streak:      stats.Streak,
		lastStudied: stats.LastStudied,
	}
}

func (l logSummary) apply(stats *domain.StudyStats) {
	stats.TotalReviews = l.reviews
	stats.Retention = l.retention
	stats.Streak = l.streak
	stats.LastStudied = l.lastStudied
}

// allDecks keys the summary over every deck.
var allDecks = uuid.Nil

// StatsCache memoizes log-derived statistics per deck and for all decks.
// Entries stay valid for the calendar day they were computed on; a
// review.recorded event recomputes the entries it affects.
//
// Each key has a generation that review.recorded bumps. A load only stores
// its result if the generation it started under is still current, so a read
// of the log that raced with an answer never replaces a newer summary.
type StatsCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]logSummary
	gens    map[uuid.UUID]uint64
	load    func(ctx context.Context, deckID *uuid.UUID) (logSummary, error)
	logger  *slog.Logger
}

// newStatsCache creates an empty cache filled by load.
func newStatsCache(
	load func(ctx context.Context, deckID *uuid.UUID) (logSummary, error),
	logger *slog.Logger,
) *StatsCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsCache{
		entries: make(map[uuid.UUID]logSummary),
		gens:    make(map[uuid.UUID]uint64),
		load:    load,
		logger:  logger.With(slog.String("component", "stats_cache")),
	}
}

// Ensure StatsCache implements events.EventHandler interface
var _ events.EventHandler = (*StatsCache)(nil)

// get returns the summary for deckID (nil for all decks), loading it when
// missing or computed on a day other than today.
func (c *StatsCache) get(ctx context.Context, deckID *uuid.UUID, today string) (logSummary, error) {
	key := allDecks
	if deckID != nil {
		key = *deckID
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	gen := c.gens[key]
	c.mu.Unlock()
	if ok && entry.day == today {
		return entry, nil
	}

	return c.refresh(ctx, key, gen)
}

// invalidate drops the entry for key and starts a new generation.
func (c *StatsCache) invalidate(key uuid.UUID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	delete(c.entries, key)
	return c.gens[key]
}

// refresh loads the summary for key and stores it unless key was
// invalidated after gen was read.
func (c *StatsCache) refresh(ctx context.Context, key uuid.UUID, gen uint64) (logSummary, error) {
	var deckID *uuid.UUID
	if key != allDecks {
		deckID = &key
	}

	summary, err := c.load(ctx, deckID)
	if err != nil {
		return logSummary{}, err
	}

	c.mu.Lock()
	if c.gens[key] == gen {
		c.entries[key] = summary
	}
	c.mu.Unlock()
	return summary, nil
}

// HandleEvent implements events.EventHandler. On review.recorded it
// recomputes the summaries of the reviewed deck and of all decks; other
// event types are ignored.
func (c *StatsCache) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeReviewRecorded {
		return nil
	}

	var payload events.ReviewRecorded
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
	}

	for _, key := range []uuid.UUID{payload.DeckID, allDecks} {
		summary, err := c.refresh(ctx, key, c.invalidate(key))
		if err != nil {
			return fmt.Errorf("failed to refresh stats: %w", err)
		}
		c.logger.Debug("refreshed stats",
			slog.String("deck_id", key.String()),
			slog.Int("retention", summary.retention),
			slog.Int("streak", summary.streak))
	}
	return nil
}
