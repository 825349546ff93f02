// Package httphandler is the HTTP driving adapter serving the JSON API
// consumed by the web client and the extension side panel.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danahertz/pastebook/internal/application"
	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc      *application.TemplateService
	identity driven.Identity
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(svc *application.TemplateService, identity driven.Identity, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		identity: identity,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/templates", h.ListTemplates)
	mux.HandleFunc("POST /api/v1/templates", h.CreateTemplate)
	mux.HandleFunc("PUT /api/v1/templates/{id}", h.UpsertTemplate)
	mux.HandleFunc("PATCH /api/v1/templates/{id}", h.UpdateTemplate)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.SaveSettings)
	mux.HandleFunc("DELETE /api/v1/cache", h.ClearCache)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListTemplates returns the session owner's templates, newest first.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.List(r.Context(), h.identity.OwnerID())
	if err != nil {
		h.writeStoreError(w, "list templates", err)
		return
	}

	resp := make([]TemplateResponse, 0, len(templates))
	for _, tmpl := range templates {
		resp = append(resp, toTemplateResponse(tmpl))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateTemplate stores a new template and returns it with its assigned id.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := h.svc.Create(r.Context(), h.identity.OwnerID(), model.TemplateFields{
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		Favorite: req.Favorite,
		Archived: req.Archived,
	})
	if err != nil {
		h.writeStoreError(w, "create template", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTemplateResponse(*tmpl))
}

// UpsertTemplate writes a template at the id given in the URL path.
func (h *Handler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpsertTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl := model.Template{
		ID:       id,
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		Favorite: req.Favorite,
		UseCount: req.UseCount,
		Archived: req.Archived,
	}
	if req.LastUsedAt != "" {
		ts, err := time.Parse(time.RFC3339, req.LastUsedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid last_used_at timestamp")
			return
		}
		tmpl.LastUsedAt = &ts
	}

	if err := h.svc.Upsert(r.Context(), h.identity.OwnerID(), tmpl); err != nil {
		h.writeStoreError(w, "upsert template", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateTemplate merges a partial update into the template at the given id.
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req PatchTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := model.TemplatePatch{
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		Favorite: req.Favorite,
		UseCount: req.UseCount,
		Archived: req.Archived,
	}
	if req.LastUsedAt != nil {
		ts, err := time.Parse(time.RFC3339, *req.LastUsedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid last_used_at timestamp")
			return
		}
		patch.LastUsedAt = &ts
	}

	if patch.IsZero() {
		writeError(w, http.StatusBadRequest, "empty update")
		return
	}

	if err := h.svc.Update(r.Context(), h.identity.OwnerID(), id, patch); err != nil {
		h.writeStoreError(w, "update template", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the user settings mapping.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}

// SaveSettings replaces the user settings mapping.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.svc.SaveSettings(r.Context(), settings)
	w.WriteHeader(http.StatusNoContent)
}

// ClearCache wipes the local cache namespaces.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearLocal(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness and which backend serves templates.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Remote: h.svc.RemoteEnabled(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeStoreError maps store errors to HTTP responses.
func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, driven.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "template not found")
	case errors.Is(err, driven.ErrRemoteUnavailable):
		h.logger.Error("remote store unavailable", "op", op, "error", err)
		writeError(w, http.StatusBadGateway, "remote store unavailable")
	default:
		h.logger.Error("store operation failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
