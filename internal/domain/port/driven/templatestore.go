package driven

import (
	"context"
	"errors"

	"github.com/danahertz/pastebook/internal/domain/model"
)

// ErrRemoteUnavailable is returned by the remote store when the backend
// cannot be reached or rejects the request (network, auth, server error).
// The facade never retries; callers decide user-facing behavior.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// ErrTemplateNotFound is returned by Update when no template exists at the
// given id.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateStore defines the driven port for template persistence. Exactly two
// adapters implement it: the local SQLite cache and the remote Firestore
// collection. The facade selects one at construction and never mixes them.
type TemplateStore interface {
	// List returns the templates owned by ownerID, ordered by CreatedAt
	// descending. The local adapter holds a flat collection and ignores
	// ownerID.
	List(ctx context.Context, ownerID string) ([]model.Template, error)

	// Create assigns a fresh unique id and creation timestamp and stores a
	// new template owned by ownerID. The stored template is returned,
	// including the assigned id.
	Create(ctx context.Context, ownerID string, fields model.TemplateFields) (*model.Template, error)

	// Upsert writes a template at the caller-supplied tmpl.ID, keeping the
	// existing CreatedAt when one is already stored.
	Upsert(ctx context.Context, ownerID string, tmpl model.Template) error

	// Update merges the named patch fields into the stored template. The
	// owner is re-asserted on every update; CreatedAt is never written.
	// Returns ErrTemplateNotFound when no template exists at id.
	Update(ctx context.Context, ownerID, id string, patch model.TemplatePatch) error
}
