package application

import (
	"context"
	"log/slog"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// TemplateService is the single entry point for template persistence. It
// selects one backend at construction — the remote store when the Firebase
// identity is configured, the local cache otherwise — and routes every call
// to that backend for its whole lifetime. No call mixes results from both
// backends and no reconciliation between them is performed.
//
// Remote failures are not retried here; they surface to the caller as
// driven.ErrRemoteUnavailable and the caller decides what to do.
type TemplateService struct {
	backend driven.TemplateStore
	cache   driven.CacheStore
	remote  bool
}

// NewTemplateService creates the facade. remote may be nil when the backend
// is unconfigured; in that mode every call is served by local and no network
// I/O is ever attempted.
func NewTemplateService(remote driven.TemplateStore, local driven.TemplateStore, cache driven.CacheStore, logger *slog.Logger) *TemplateService {
	backend := local
	useRemote := remote != nil
	if useRemote {
		backend = remote
	}

	logger.Debug("template backend selected", "remote", useRemote)

	return &TemplateService{
		backend: backend,
		cache:   cache,
		remote:  useRemote,
	}
}

// RemoteEnabled reports whether calls are served by the remote store.
func (s *TemplateService) RemoteEnabled() bool {
	return s.remote
}

// List returns the owner's templates, newest first.
func (s *TemplateService) List(ctx context.Context, ownerID string) ([]model.Template, error) {
	return s.backend.List(ctx, ownerID)
}

// Create stores a new template and returns it with its assigned id.
func (s *TemplateService) Create(ctx context.Context, ownerID string, fields model.TemplateFields) (*model.Template, error) {
	return s.backend.Create(ctx, ownerID, fields)
}

// Upsert writes a template at a caller-supplied id.
func (s *TemplateService) Upsert(ctx context.Context, ownerID string, tmpl model.Template) error {
	return s.backend.Upsert(ctx, ownerID, tmpl)
}

// Update merges a partial update into the stored template.
func (s *TemplateService) Update(ctx context.Context, ownerID, id string, patch model.TemplatePatch) error {
	return s.backend.Update(ctx, ownerID, id, patch)
}

// Settings returns the user settings mapping. Settings are a local-only
// namespace regardless of which backend serves templates.
func (s *TemplateService) Settings(ctx context.Context) model.Settings {
	return s.cache.Settings(ctx)
}

// SaveSettings replaces the user settings mapping.
func (s *TemplateService) SaveSettings(ctx context.Context, settings model.Settings) {
	s.cache.SaveSettings(ctx, settings)
}

// ClearLocal wipes both local cache namespaces. The remote store is never
// touched.
func (s *TemplateService) ClearLocal(ctx context.Context) {
	s.cache.ClearAll(ctx)
}
