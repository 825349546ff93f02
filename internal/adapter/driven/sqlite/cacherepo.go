package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// Namespaced cache keys. The layout mirrors the browser build: one key holds
// the serialized template collection, one the serialized settings mapping.
const (
	nsTemplates = "pastebook.templates"
	nsSettings  = "pastebook.settings"
)

// Compile-time interface satisfaction check.
var _ driven.CacheStore = (*CacheRepo)(nil)

// CacheRepo is the SQLite implementation of the CacheStore port interface.
// Every operation is best-effort: storage failures are logged and degrade to
// an empty read or a no-op write, never an error. Callers already treat the
// cache as expendable, so availability wins over error visibility here.
type CacheRepo struct {
	db     *DB
	logger *slog.Logger
}

// NewCacheRepo creates a new CacheRepo backed by the given DB.
func NewCacheRepo(db *DB, logger *slog.Logger) *CacheRepo {
	return &CacheRepo{db: db, logger: logger}
}

// Records returns the cached template collection. A missing or corrupt
// payload yields an empty slice.
func (r *CacheRepo) Records(ctx context.Context) []model.Template {
	raw, ok := r.read(ctx, nsTemplates)
	if !ok {
		return []model.Template{}
	}

	var templates []model.Template
	if err := json.Unmarshal([]byte(raw), &templates); err != nil {
		r.logger.Warn("local cache holds corrupt template payload, treating as empty", "error", err)
		return []model.Template{}
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates
}

// SaveRecords replaces the entire cached template collection.
func (r *CacheRepo) SaveRecords(ctx context.Context, templates []model.Template) {
	if templates == nil {
		templates = []model.Template{}
	}
	data, err := json.Marshal(templates)
	if err != nil {
		r.logger.Warn("marshal templates for local cache", "error", err)
		return
	}
	r.write(ctx, nsTemplates, string(data))
}

// Settings returns the cached settings mapping, empty when absent.
func (r *CacheRepo) Settings(ctx context.Context) model.Settings {
	raw, ok := r.read(ctx, nsSettings)
	if !ok {
		return model.Settings{}
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		r.logger.Warn("local cache holds corrupt settings payload, treating as empty", "error", err)
		return model.Settings{}
	}
	if settings == nil {
		settings = model.Settings{}
	}
	return settings
}

// SaveSettings replaces the cached settings mapping.
func (r *CacheRepo) SaveSettings(ctx context.Context, settings model.Settings) {
	if settings == nil {
		settings = model.Settings{}
	}
	data, err := json.Marshal(settings)
	if err != nil {
		r.logger.Warn("marshal settings for local cache", "error", err)
		return
	}
	r.write(ctx, nsSettings, string(data))
}

// ClearAll removes both cached namespaces.
func (r *CacheRepo) ClearAll(ctx context.Context) {
	const query = `DELETE FROM local_cache WHERE ns IN (?, ?)`
	if _, err := r.db.Writer.ExecContext(ctx, query, nsTemplates, nsSettings); err != nil {
		r.logger.Warn("clear local cache", "error", err)
	}
}

// read returns the raw value under ns. ok is false when the key is absent or
// the read failed; absence of a key is equivalent to an empty value.
func (r *CacheRepo) read(ctx context.Context, ns string) (string, bool) {
	const query = `SELECT value FROM local_cache WHERE ns = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, ns).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		r.logger.Warn("read local cache", "ns", ns, "error", err)
		return "", false
	}
	return value, true
}

func (r *CacheRepo) write(ctx context.Context, ns, value string) {
	const query = `
		INSERT INTO local_cache (ns, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(ns) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.Writer.ExecContext(ctx, query, ns, value); err != nil {
		r.logger.Warn("write local cache", "ns", ns, "error", err)
	}
}
