package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/neurodeck/internal/api/shared"
	"github.com/phrazzld/neurodeck/internal/importer"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/redact"
	"github.com/phrazzld/neurodeck/internal/service"
)

// DeckHandler handles deck and card management requests
type DeckHandler struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(deckService service.DeckService, logger *slog.Logger) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /decks/{deckID}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// CreateDeck handles POST /decks. Cards in the body are created with the deck.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req service.DeckInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(deck.Cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// UpdateDeck handles PUT /decks/{deckID}
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req service.DeckInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.deckService.UpdateDeck(r.Context(), deckID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{deckID}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCard handles POST /decks/{deckID}/cards
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req service.CardInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.deckService.AddCard(r.Context(), deckID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// UpdateCard handles PUT /decks/{deckID}/cards/{cardID}. Only the content
// changes; the schedule is kept.
func (h *DeckHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req service.CardInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.deckService.UpdateCard(r.Context(), deckID, cardID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /decks/{deckID}/cards/{cardID}
func (h *DeckHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.deckService.DeleteCard(r.Context(), deckID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportCards handles POST /decks/{deckID}/import. The body carries a
// markdown deck; its cards are appended to the deck all at once.
func (h *DeckHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ImportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	parsed, err := importer.Parse(strings.NewReader(req.Markdown))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to parse markdown")
		return
	}

	cards, err := h.deckService.Import(r.Context(), deckID, parsed.CardInputs())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import cards")
		return
	}

	log.Info("cards imported",
		slog.String("deck_id", deckID.String()),
		slog.Int("cards", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, ImportResponse{
		DeckID:   deckID,
		Imported: len(cards),
		Cards:    cards,
	})
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	if err := shared.DecodeJSON(w, r, v); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
