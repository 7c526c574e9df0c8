package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/flexos-dev/builder-gateway/internal/chat"
	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/provider"
	"github.com/flexos-dev/builder-gateway/internal/server"
	"github.com/flexos-dev/builder-gateway/internal/storage"
)

// chatRequest is the inbound body for both chat endpoints. ProjectID is
// optional; when present, usage is recorded against the project.
type chatRequest struct {
	domain.ChatRequest
	ProjectID string `json:"projectId,omitempty"`
}

// chatResponse is the unary chat envelope. Provider failures come back as
// success=false with a fixed message rather than an HTTP error, so the
// conversation UI can render them inline.
type chatResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Usage   *domain.Usage `json:"usage,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Chat handles the unary chat endpoint.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	server.AddLogField(r.Context(), "provider", provider.SelectedName(h.cfg, req.Mode))
	server.AddLogField(r.Context(), "tab", req.ActiveTab)

	completion, err := h.svc.Respond(r.Context(), &req.ChatRequest)
	if err != nil {
		server.AddError(r.Context(), err)
		h.writeJSON(w, http.StatusOK, chatResponse{
			Success: false,
			Error:   chat.ErrorMessage,
		})
		return
	}

	h.recordUsage(r, req.ProjectID, req.Mode, completion.Usage)
	h.writeJSON(w, http.StatusOK, chatResponse{
		Success: true,
		Message: completion.Text,
		Usage:   &completion.Usage,
	})
}

// ChatStream handles the streaming chat endpoint. The response is SSE; all
// failures after the stream opens surface as stream events, not HTTP errors.
func (h *Handler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	server.AddLogField(r.Context(), "provider", provider.SelectedName(h.cfg, req.Mode))
	server.AddLogField(r.Context(), "tab", req.ActiveTab)

	sse := chat.NewSSEWriter(w)
	if err := h.svc.StreamTo(r.Context(), &req.ChatRequest, sse); err != nil {
		// The stream is already open; nothing more can be sent.
		server.AddError(r.Context(), err)
	}
}

func (h *Handler) recordUsage(r *http.Request, projectID, mode string, usage domain.Usage) {
	if h.store == nil || projectID == "" {
		return
	}
	err := h.store.RecordUsage(r.Context(), &storage.UsageRecord{
		ID:               uuid.NewString(),
		ProjectID:        projectID,
		Provider:         provider.SelectedName(h.cfg, mode),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	})
	if err != nil {
		h.logger.Warn("failed to record usage", "project", projectID, "error", err)
	}
}
