// Package handler wires the HTTP API: the chat endpoints, the suggestion
// queue, project records, and diagnostics.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flexos-dev/builder-gateway/internal/chat"
	"github.com/flexos-dev/builder-gateway/internal/config"
	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
	"github.com/flexos-dev/builder-gateway/internal/suggest"
)

// Handler serves the HTTP API.
type Handler struct {
	cfg    *config.Config
	svc    *chat.Service
	store  storage.Store
	queue  *suggest.Queue
	logger *slog.Logger
}

// New creates the API handler.
func New(cfg *config.Config, svc *chat.Service, store storage.Store, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		svc:    svc,
		store:  store,
		queue:  suggest.NewQueue(),
		logger: logger,
	}
}

// Routes mounts every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
	r.Post("/api/chat-stream", h.ChatStream)
	r.Get("/api/test-ai", h.TestAI)
	r.Get("/api/health", h.Health)

	r.Route("/api/projects", func(r chi.Router) {
		r.Post("/", h.CreateProject)
		r.Get("/", h.ListProjects)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Put("/", h.UpdateProject)
			r.Delete("/", h.DeleteProject)
			r.Get("/messages", h.ListMessages)
			r.Post("/messages", h.AppendMessage)
			r.Get("/artifacts", h.ListArtifacts)
			r.Get("/usage", h.UsageTotals)
		})
	})
	r.Delete("/api/artifacts/{artifactID}", h.DeleteArtifact)

	r.Route("/api/suggestions", func(r chi.Router) {
		r.Get("/", h.ListSuggestions)
		r.Post("/", h.AddSuggestion)
		r.Delete("/", h.ClearSuggestions)
		r.Post("/extract", h.ExtractSuggestions)
		r.Post("/{suggestionID}/accept", h.AcceptSuggestion)
		r.Post("/{suggestionID}/reject", h.RejectSuggestion)
		r.Post("/{suggestionID}/modify", h.ModifySuggestion)
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError translates an error into a JSON error response, using the
// APIError status when available.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		h.writeJSON(w, apiErr.HTTPStatusCode(), map[string]any{
			"error": apiErr.Message,
			"type":  apiErr.Type,
		})
		return
	}
	h.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "internal server error",
		"type":  domain.ErrorTypeServer,
	})
}

func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidRequest("invalid JSON body")
	}
	return nil
}
