package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"spec-tracker/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the campaign usecase and
// a logger for structured logging; routes are registered on a chi.Router.
// The form-driven UI is a separate client of this API.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.handleUpdateCampaign)
				r.Delete("/", h.handleDeleteCampaign)

				r.Post("/notes", h.handleRecordEdit)
				r.Get("/notes/latest", h.handleLatestEdit)
				r.Get("/notes/history", h.handleNotesHistory)

				r.Post("/spec", h.handleUploadSpec)
				r.Get("/spec/versions", h.handleListSpecVersions)
				r.Get("/spec/next-version", h.handleNextSpecVersion)
				r.Get("/spec/{filename}", h.handleDownloadSpec)
			})
		})
		r.Post("/cache/invalidate", h.handleInvalidateCache)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
