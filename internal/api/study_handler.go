package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/neurodeck/internal/api/shared"
	"github.com/phrazzld/neurodeck/internal/platform/logger"
	"github.com/phrazzld/neurodeck/internal/service/study"
)

// StudyHandler handles study session and statistics requests
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(studyService study.StudyService, logger *slog.Logger) *StudyHandler {
	if studyService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("studyService cannot be nil for StudyHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// GetQueue handles GET /decks/{deckID}/queue?max=N. Without max the
// configured session size is used; max <= 0 gives an empty queue.
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// 0 asks the service for its default size, so an explicit max=0 is
	// mapped to -1 to keep "no cards" distinct from "default".
	maxSize := 0
	if r.URL.Query().Has("max") {
		maxSize, err = getQueryInt(r, "max", 0)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		if maxSize <= 0 {
			maxSize = -1
		}
	}

	cards, err := h.studyService.Queue(r.Context(), deckID, maxSize)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build study queue")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, QueueResponse{DeckID: deckID, Cards: cards})
}

// GetDueCount handles GET /decks/{deckID}/due-count
func (h *StudyHandler) GetDueCount(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	due, err := h.studyService.DueCount(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count due cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DueCountResponse{DeckID: deckID, Due: due})
}

// SubmitAnswer handles POST /decks/{deckID}/cards/{cardID}/answer
// It records a known/unknown response and returns the rescheduled card.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

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

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.studyService.SubmitAnswer(r.Context(), deckID, cardID, *req.Known)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	log.Debug("answer recorded",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("known", *req.Known),
		slog.Int("interval", result.Card.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetStats handles GET /stats?deck_id=. Without deck_id the statistics
// cover every deck.
func (h *StudyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	deckID, err := getQueryUUID(r, "deck_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stats, err := h.studyService.Stats(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetRetention handles GET /stats/retention?deck_id=
func (h *StudyHandler) GetRetention(w http.ResponseWriter, r *http.Request) {
	deckID, err := getQueryUUID(r, "deck_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	series, err := h.studyService.RetentionSeries(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute retention")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, series)
}

// GetActivity handles GET /stats/activity
func (h *StudyHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	days, err := h.studyService.Activity(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute activity")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, days)
}

// GetProgress handles GET /decks/{deckID}/progress
func (h *StudyHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	progress, err := h.studyService.Progress(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
