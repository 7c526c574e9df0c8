package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
	"github.com/flexos-dev/builder-gateway/internal/suggest"
)

// ListSuggestions returns queued suggestions, optionally filtered by status.
func (h *Handler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	var out []domain.Suggestion
	switch domain.SuggestionStatus(r.URL.Query().Get("status")) {
	case domain.SuggestionPending:
		out = h.queue.Pending()
	case domain.SuggestionAccepted:
		out = h.queue.Accepted()
	default:
		out = h.queue.All()
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// AddSuggestion queues a wire-level suggestion entry.
func (h *Handler) AddSuggestion(w http.ResponseWriter, r *http.Request) {
	var entry domain.SuggestionEntry
	if err := h.decode(r, &entry); err != nil {
		h.writeError(w, err)
		return
	}

	s, err := domain.PromoteSuggestion(entry)
	if err != nil {
		h.writeError(w, domain.ErrInvalidRequest(err.Error()))
		return
	}
	h.writeJSON(w, http.StatusCreated, h.queue.Add(s))
}

type extractRequest struct {
	Text string `json:"text"`
}

// ExtractSuggestions scans free-form assistant text for implied suggestions
// and queues whatever it finds.
func (h *Handler) ExtractSuggestions(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	found := suggest.Extract(req.Text)
	for _, s := range found {
		h.queue.Add(s)
	}
	if found == nil {
		found = []domain.Suggestion{}
	}
	h.writeJSON(w, http.StatusOK, found)
}

type decisionRequest struct {
	// ProjectID, when set on accept, persists the suggestion as a project
	// artifact.
	ProjectID string `json:"projectId,omitempty"`
}

// AcceptSuggestion marks a pending suggestion accepted and optionally
// persists it to a project.
func (h *Handler) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if r.ContentLength > 0 {
		if err := h.decode(r, &req); err != nil {
			h.writeError(w, err)
			return
		}
	}

	id := chi.URLParam(r, "suggestionID")
	s, ok := h.queue.Accept(id)
	if !ok {
		h.writeError(w, domain.ErrNotFound("no pending suggestion "+id))
		return
	}

	if req.ProjectID != "" && h.store != nil {
		a := &storage.Artifact{
			ID:          uuid.NewString(),
			ProjectID:   req.ProjectID,
			Type:        s.Type,
			Title:       s.Title,
			Description: s.Description,
			Preview:     s.Preview,
		}
		if err := h.store.SaveArtifact(r.Context(), a); err != nil {
			h.writeError(w, err)
			return
		}
	}
	h.writeJSON(w, http.StatusOK, s)
}

// RejectSuggestion marks a pending suggestion rejected.
func (h *Handler) RejectSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "suggestionID")
	s, ok := h.queue.Reject(id)
	if !ok {
		h.writeError(w, domain.ErrNotFound("no pending suggestion "+id))
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

type modifyRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModifySuggestion updates a pending suggestion's title or description and
// marks it modified.
func (h *Handler) ModifySuggestion(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "suggestionID")
	s, ok := h.queue.Modify(id, func(m *domain.Suggestion) {
		if req.Title != "" {
			m.Title = req.Title
		}
		if req.Description != "" {
			m.Description = req.Description
		}
	})
	if !ok {
		h.writeError(w, domain.ErrNotFound("no pending suggestion "+id))
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

// ClearSuggestions empties the queue, or drops only rejected entries with
// ?rejected=true.
func (h *Handler) ClearSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("rejected") == "true" {
		h.queue.ClearRejected()
	} else {
		h.queue.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}
