package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
)

type projectRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	Vision         string `json:"vision"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Name == "" {
		h.writeError(w, domain.ErrInvalidRequest("name is required"))
		return
	}

	p := &storage.Project{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		Vision:         req.Vision,
	}
	if err := h.store.CreateProject(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "projectID")
	p, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.TargetAudience != "" {
		p.TargetAudience = req.TargetAudience
	}
	if req.Vision != "" {
		p.Vision = req.Vision
	}

	if err := h.store.UpdateProject(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type messageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (h *Handler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Role != "user" && req.Role != "assistant" && req.Role != "system" {
		h.writeError(w, domain.ErrInvalidRequest("role must be user, assistant, or system"))
		return
	}

	m := &storage.Message{
		ID:        uuid.NewString(),
		ProjectID: chi.URLParam(r, "projectID"),
		Role:      req.Role,
		Content:   req.Content,
	}
	if err := h.store.AppendMessage(r.Context(), m); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.ListMessages(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	typ := domain.SuggestionType(r.URL.Query().Get("type"))
	artifacts, err := h.store.ListArtifacts(r.Context(), chi.URLParam(r, "projectID"), typ)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, artifacts)
}

func (h *Handler) DeleteArtifact(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteArtifact(r.Context(), chi.URLParam(r, "artifactID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UsageTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.UsageTotals(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, totals)
}
