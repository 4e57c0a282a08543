package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/store"
)

// DeckInput carries the editable fields of a deck. Cards, when present, are
// created together with the deck.
type DeckInput struct {
	Title       string      `json:"title"       validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Tags        []string    `json:"tags"        validate:"max=50,dive,required,max=50"`
	Cards       []CardInput `json:"cards"       validate:"dive"`
}

// CardInput carries the editable fields of a card.
type CardInput struct {
	Front string   `json:"front" validate:"required"`
	Back  string   `json:"back"  validate:"required"`
	Tags  []string `json:"tags"  validate:"max=50,dive,required,max=50"`
}

// DeckService provides deck and card management operations.
type DeckService interface {
	// ListDecks returns every deck with its cards.
	ListDecks(ctx context.Context) ([]domain.Deck, error)

	// GetDeck returns one deck with its cards.
	GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// CreateDeck creates a deck, and the cards in input.Cards, atomically.
	CreateDeck(ctx context.Context, input DeckInput) (*domain.Deck, error)

	// UpdateDeck replaces the title, description and tags of a deck.
	// input.Cards is ignored.
	UpdateDeck(ctx context.Context, deckID uuid.UUID, input DeckInput) (*domain.Deck, error)

	// DeleteDeck removes a deck and its cards. Study history is kept.
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error

	// AddCard appends a never-reviewed card to a deck.
	AddCard(ctx context.Context, deckID uuid.UUID, input CardInput) (*domain.Card, error)

	// UpdateCard edits the content of a card; scheduling state is untouched.
	UpdateCard(ctx context.Context, deckID, cardID uuid.UUID, input CardInput) (*domain.Card, error)

	// DeleteCard removes a card from its deck.
	DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error

	// Import appends many cards to a deck; either all are added or none.
	Import(ctx context.Context, deckID uuid.UUID, cards []CardInput) ([]domain.Card, error)
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	backend store.Backend
	logger  *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if the backend is nil.
func NewDeckService(backend store.Backend, logger *slog.Logger) (DeckService, error) {
	if backend == nil {
		return nil, domain.NewValidationError("backend", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		backend: backend,
		logger:  logger.With(slog.String("component", "deck_service")),
	}, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decks, err := s.backend.Stores().Decks.List(ctx)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}

	return decks, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.backend.Stores().Decks.Get(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found", slog.String("deck_id", deckID.String()))
			return nil, NewDeckServiceError("get_deck", "deck not found", store.ErrDeckNotFound)
		}
		log.Error("failed to retrieve deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError("get_deck", "failed to retrieve deck", err)
	}

	return deck, nil
}

// CreateDeck implements DeckService.CreateDeck
func (s *deckServiceImpl) CreateDeck(ctx context.Context, input DeckInput) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(input.Title, input.Description, input.Tags)
	if err != nil {
		log.Warn("invalid deck", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("create_deck", "invalid deck", err)
	}

	cards, err := newCards(deck.ID, input.Cards)
	if err != nil {
		log.Warn("invalid card in new deck", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("create_deck", "invalid card", err)
	}

	err = s.backend.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		if err := st.Decks.Create(ctx, deck); err != nil {
			return err
		}
		return st.Cards.CreateMultiple(ctx, cards)
	})
	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return nil, NewDeckServiceError("create_deck", "failed to save deck", err)
	}

	for _, c := range cards {
		deck.Cards = append(deck.Cards, *c)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(cards)))
	return deck, nil
}

// UpdateDeck implements DeckService.UpdateDeck
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	deckID uuid.UUID,
	input DeckInput,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Deck
	err := s.backend.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		deck, err := st.Decks.Get(ctx, deckID)
		if err != nil {
			return err
		}

		deck.Title = input.Title
		deck.Description = input.Description
		if input.Tags != nil {
			deck.Tags = input.Tags
		}
		if err := deck.Validate(); err != nil {
			return err
		}

		if err := st.Decks.Update(ctx, deck); err != nil {
			return err
		}
		updated = deck
		return nil
	})
	if err != nil {
		return nil, s.wrap(log, "update_deck", deckID, err)
	}

	log.Info("deck updated", slog.String("deck_id", deckID.String()))
	return updated, nil
}

// DeleteDeck implements DeckService.DeleteDeck
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.backend.Stores().Decks.Delete(ctx, deckID); err != nil {
		return s.wrap(log, "delete_deck", deckID, err)
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

// AddCard implements DeckService.AddCard
func (s *deckServiceImpl) AddCard(
	ctx context.Context,
	deckID uuid.UUID,
	input CardInput,
) (*domain.Card, error) {
	cards, err := s.addCards(ctx, "add_card", deckID, []CardInput{input})
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// UpdateCard implements DeckService.UpdateCard
func (s *deckServiceImpl) UpdateCard(
	ctx context.Context,
	deckID, cardID uuid.UUID,
	input CardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Card
	err := s.backend.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		card, err := st.Cards.GetForUpdate(ctx, deckID, cardID)
		if err != nil {
			return err
		}
		if err := card.UpdateContent(input.Front, input.Back, input.Tags); err != nil {
			return err
		}
		if err := st.Cards.Update(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, s.wrap(log, "update_card", deckID, err)
	}

	log.Info("card updated",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()))
	return updated, nil
}

// DeleteCard implements DeckService.DeleteCard
func (s *deckServiceImpl) DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.backend.Stores().Cards.Delete(ctx, deckID, cardID); err != nil {
		return s.wrap(log, "delete_card", deckID, err)
	}

	log.Info("card deleted",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()))
	return nil
}

// Import implements DeckService.Import
func (s *deckServiceImpl) Import(
	ctx context.Context,
	deckID uuid.UUID,
	inputs []CardInput,
) ([]domain.Card, error) {
	if len(inputs) == 0 {
		return nil, NewDeckServiceError("import", "nothing to import", ErrEmptyImport)
	}
	return s.addCards(ctx, "import", deckID, inputs)
}

func (s *deckServiceImpl) addCards(
	ctx context.Context,
	op string,
	deckID uuid.UUID,
	inputs []CardInput,
) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := newCards(deckID, inputs)
	if err != nil {
		log.Warn("invalid card",
			slog.String("operation", op),
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError(op, "invalid card", err)
	}

	err = s.backend.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		return st.Cards.CreateMultiple(ctx, cards)
	})
	if err != nil {
		return nil, s.wrap(log, op, deckID, err)
	}

	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		out[i] = *c
	}

	log.Info("cards added",
		slog.String("operation", op),
		slog.String("deck_id", deckID.String()),
		slog.Int("card_count", len(out)))
	return out, nil
}

// wrap maps store and domain failures to a DeckServiceError, logging
// unexpected ones.
func (s *deckServiceImpl) wrap(log *slog.Logger, op string, deckID uuid.UUID, err error) error {
	switch {
	case store.IsNotFoundError(err):
		log.Debug("entity not found",
			slog.String("operation", op),
			slog.String("deck_id", deckID.String()),
			slog.String("error", err.Error()))
		return NewDeckServiceError(op, "not found", err)
	case isValidation(err):
		log.Warn("validation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return NewDeckServiceError(op, "invalid input", err)
	}

	log.Error("operation failed",
		slog.String("operation", op),
		slog.String("deck_id", deckID.String()),
		slog.String("error", err.Error()))
	return NewDeckServiceError(op, "storage failure", err)
}

func newCards(deckID uuid.UUID, inputs []CardInput) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0, len(inputs))
	for _, in := range inputs {
		card, err := domain.NewCard(deckID, in.Front, in.Back, in.Tags)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
