package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/config"
	"github.com/phrazzld/neurodeck/internal/dates"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/domain/srs"
	"github.com/phrazzld/neurodeck/internal/events"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/platform/memory"
	"github.com/phrazzld/neurodeck/internal/platform/sqlite"
	"github.com/phrazzld/neurodeck/internal/service"
	"github.com/phrazzld/neurodeck/internal/service/study"
	"github.com/phrazzld/neurodeck/internal/store"
	"github.com/spf13/cobra"
)

// load reads .env, the config file and the environment, applies flag
// overrides and sets up logging to the command's stderr.
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.statePath != "" {
		cfg.Storage.StatePath = o.statePath
	}
	if o.logLevel != "" {
		cfg.Server.LogLevel = o.logLevel
	}

	log, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	return cfg, log, nil
}

// newSRSService builds the scheduling service from the study settings.
func newSRSService(cfg config.StudyConfig) (srs.Service, error) {
	return srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		DefaultQueueSize: cfg.QueueSize,
		MasteredInterval: cfg.MasteredInterval,
	}))
}

// services wires the deck and study services over one backend. The study
// service's stats cache is registered with the emitter so answers refresh it.
type services struct {
	decks service.DeckService
	study *study.Service
}

func newServices(backend store.Backend, cfg *config.Config, clock dates.Clock, log *slog.Logger) (*services, error) {
	srsService, err := newSRSService(cfg.Study)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize srs service: %w", err)
	}

	decks, err := service.NewDeckService(backend, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize deck service: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(log)
	studyService, err := study.NewService(backend, srsService, clock, emitter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize study service: %w", err)
	}
	emitter.RegisterHandler(studyService.StatsCache())

	return &services{decks: decks, study: studyService}, nil
}

// localSession is the state file opened by the local commands. The whole
// application state is loaded into a memory store and written back on Close
// when a command changed it.
type localSession struct {
	*services

	cfg    *config.Config
	log    *slog.Logger
	db     *sqlite.DB
	states *sqlite.StateStore
	mem    *memory.Store
}

func openLocal(ctx context.Context, cfg *config.Config, log *slog.Logger) (*localSession, error) {
	db, err := sqlite.Open(cfg.Storage.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	states := sqlite.NewStateStore(db, log)
	state, err := states.Load(ctx, cfg.Storage.StateKey)
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		log.Debug("no saved state, starting empty", slog.String("path", cfg.Storage.StatePath))
		state = domain.NewAppState()
	case err != nil:
		_ = db.Close()
		return nil, err
	}

	mem := memory.NewStore(state)
	svcs, err := newServices(mem, cfg, dates.SystemClock{}, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &localSession{
		services: svcs,
		cfg:      cfg,
		log:      log,
		db:       db,
		states:   states,
		mem:      mem,
	}, nil
}

// Close saves the state if it changed and closes the database.
func (s *localSession) Close(ctx context.Context) error {
	var saveErr error
	if s.mem.Dirty() {
		saveErr = s.states.Save(ctx, s.cfg.Storage.StateKey, s.mem.Snapshot())
		if saveErr == nil {
			s.mem.MarkClean()
		}
	}
	return errors.Join(saveErr, s.db.Close())
}

// withLocal runs fn against the local state and saves it afterwards.
func (o *globalOptions) withLocal(cmd *cobra.Command, fn func(ctx context.Context, s *localSession) error) error {
	cfg, log, err := o.load(cmd)
	if err != nil {
		return err
	}

	ctx := logger.WithLogger(cmd.Context(), log)
	session, err := openLocal(ctx, cfg, log)
	if err != nil {
		return err
	}

	runErr := fn(ctx, session)
	return errors.Join(runErr, session.Close(ctx))
}

// resolveDeck finds a deck by id or by case-insensitive title.
func resolveDeck(ctx context.Context, decks service.DeckService, ref string) (*domain.Deck, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return decks.GetDeck(ctx, id)
	}

	all, err := decks.ListDecks(ctx)
	if err != nil {
		return nil, err
	}
	var match *domain.Deck
	for i := range all {
		if !strings.EqualFold(all[i].Title, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("more than one deck is titled %q; use the deck id", ref)
		}
		match = &all[i]
	}
	if match == nil {
		return nil, fmt.Errorf("%w: no deck titled %q", store.ErrDeckNotFound, ref)
	}
	return match, nil
}

// resolveCard finds a card in deck by full id or unique id prefix.
func resolveCard(deck *domain.Deck, ref string) (*domain.Card, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, errors.New("empty card id")
	}
	var match *domain.Card
	for i := range deck.Cards {
		if !strings.HasPrefix(deck.Cards[i].ID.String(), ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("card id prefix %q is ambiguous", ref)
		}
		match = &deck.Cards[i]
	}
	if match == nil {
		return nil, fmt.Errorf("%w: no card %q in deck %q", store.ErrCardNotFound, ref, deck.Title)
	}
	return match, nil
}
