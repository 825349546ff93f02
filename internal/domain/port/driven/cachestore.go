package driven

import (
	"context"

	"github.com/danahertz/pastebook/internal/domain/model"
)

// CacheStore defines the driven port for the local fallback cache. All
// operations are best-effort: an underlying storage failure degrades a read
// to an empty result and a write to a no-op, logged by the adapter but never
// surfaced. Callers treat the cache as expendable.
type CacheStore interface {
	// Records returns the cached template collection. A missing or corrupt
	// payload yields an empty slice.
	Records(ctx context.Context) []model.Template

	// SaveRecords replaces the entire cached collection. Not a merge:
	// callers supply the complete desired set.
	SaveRecords(ctx context.Context, templates []model.Template)

	// Settings returns the cached settings mapping, empty when absent.
	Settings(ctx context.Context) model.Settings

	// SaveSettings replaces the cached settings mapping.
	SaveSettings(ctx context.Context, settings model.Settings)

	// ClearAll removes both cached namespaces.
	ClearAll(ctx context.Context)
}
