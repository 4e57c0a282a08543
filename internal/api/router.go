package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/neurodeck/internal/api/middleware"
	"github.com/phrazzld/neurodeck/internal/api/shared"
	"github.com/phrazzld/neurodeck/internal/service"
	"github.com/phrazzld/neurodeck/internal/service/study"
)

// NewRouter creates the application router with all routes and middleware.
func NewRouter(
	deckService service.DeckService,
	studyService study.StudyService,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(middleware.Recoverer)

	deckHandler := NewDeckHandler(deckService, logger)
	studyHandler := NewStudyHandler(studyService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)

			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Put("/", deckHandler.UpdateDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Post("/import", deckHandler.ImportCards)

				// Study session endpoints
				r.Get("/queue", studyHandler.GetQueue)
				r.Get("/due-count", studyHandler.GetDueCount)
				r.Get("/progress", studyHandler.GetProgress)

				// Card management endpoints
				r.Post("/cards", deckHandler.AddCard)
				r.Put("/cards/{cardID}", deckHandler.UpdateCard)
				r.Delete("/cards/{cardID}", deckHandler.DeleteCard)
				r.Post("/cards/{cardID}/answer", studyHandler.SubmitAnswer)
			})
		})

		r.Get("/stats", studyHandler.GetStats)
		r.Get("/stats/retention", studyHandler.GetRetention)
		r.Get("/stats/activity", studyHandler.GetActivity)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	})

	return r
}
