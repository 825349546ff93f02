package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/danahertz/pastebook/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// TemplateResponse is the JSON representation of a template.
type TemplateResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	Favorite   bool     `json:"favorite"`
	UseCount   int64    `json:"use_count"`
	LastUsedAt string   `json:"last_used_at,omitempty"`
	CreatedAt  string   `json:"created_at"`
	Archived   bool     `json:"archived"`
}

// CreateTemplateRequest is the JSON body for the create endpoint.
type CreateTemplateRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
	Archived bool     `json:"archived"`
}

// UpsertTemplateRequest is the JSON body for the upsert endpoint. The id
// comes from the URL path.
type UpsertTemplateRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	Favorite   bool     `json:"favorite"`
	UseCount   int64    `json:"use_count"`
	LastUsedAt string   `json:"last_used_at,omitempty"`
	Archived   bool     `json:"archived"`
}

// PatchTemplateRequest is the JSON body for the partial update endpoint.
// Absent fields are left unchanged.
type PatchTemplateRequest struct {
	Title      *string  `json:"title,omitempty"`
	Body       *string  `json:"body,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Favorite   *bool    `json:"favorite,omitempty"`
	UseCount   *int64   `json:"use_count,omitempty"`
	LastUsedAt *string  `json:"last_used_at,omitempty"`
	Archived   *bool    `json:"archived,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Remote bool   `json:"remote"`
	Time   string `json:"time"`
}

// toTemplateResponse converts a domain Template to its JSON representation.
// Timestamps are rendered as RFC3339 UTC.
func toTemplateResponse(tmpl model.Template) TemplateResponse {
	tags := tmpl.Tags
	if tags == nil {
		tags = []string{}
	}

	resp := TemplateResponse{
		ID:        tmpl.ID,
		Title:     tmpl.Title,
		Body:      tmpl.Body,
		Tags:      tags,
		Favorite:  tmpl.Favorite,
		UseCount:  tmpl.UseCount,
		CreatedAt: tmpl.CreatedAt.UTC().Format(time.RFC3339),
		Archived:  tmpl.Archived,
	}
	if tmpl.LastUsedAt != nil {
		resp.LastUsedAt = tmpl.LastUsedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
