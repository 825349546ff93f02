package sqlite

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TemplateStore = (*LocalStore)(nil)

// LocalStore implements the TemplateStore port on top of the local cache.
// The collection is flat: ownerID arguments are accepted for interface parity
// with the remote store but not used for filtering, since the cache only ever
// holds the current user's templates.
type LocalStore struct {
	cache driven.CacheStore
	now   func() time.Time
	newID func() string
}

// NewLocalStore creates a LocalStore reading and writing through cache.
func NewLocalStore(cache driven.CacheStore) *LocalStore {
	return &LocalStore{
		cache: cache,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// List returns all cached templates ordered by CreatedAt descending.
func (s *LocalStore) List(ctx context.Context, _ string) ([]model.Template, error) {
	templates := s.cache.Records(ctx)
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
	return templates, nil
}

// Create assigns a random id and the current time, appends the template to
// the cached collection, and returns it.
func (s *LocalStore) Create(ctx context.Context, ownerID string, fields model.TemplateFields) (*model.Template, error) {
	tags := fields.Tags
	if tags == nil {
		tags = []string{}
	}

	tmpl := model.Template{
		ID:        s.newID(),
		OwnerID:   ownerID,
		Title:     fields.Title,
		Body:      fields.Body,
		Tags:      tags,
		Favorite:  fields.Favorite,
		Archived:  fields.Archived,
		CreatedAt: s.now().UTC(),
	}

	templates := s.cache.Records(ctx)
	templates = append(templates, tmpl)
	s.cache.SaveRecords(ctx, templates)

	return &tmpl, nil
}

// Upsert writes tmpl at its caller-supplied id, replacing any existing entry.
// An existing CreatedAt is kept; a new entry without one gets the current time.
func (s *LocalStore) Upsert(ctx context.Context, ownerID string, tmpl model.Template) error {
	tmpl.OwnerID = ownerID

	templates := s.cache.Records(ctx)
	for i := range templates {
		if templates[i].ID == tmpl.ID {
			if !templates[i].CreatedAt.IsZero() {
				tmpl.CreatedAt = templates[i].CreatedAt
			} else if tmpl.CreatedAt.IsZero() {
				tmpl.CreatedAt = s.now().UTC()
			}
			templates[i] = tmpl
			s.cache.SaveRecords(ctx, templates)
			return nil
		}
	}

	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = s.now().UTC()
	}
	templates = append(templates, tmpl)
	s.cache.SaveRecords(ctx, templates)
	return nil
}

// Update merges patch into the stored template. The stored owner and
// CreatedAt are untouched regardless of the patch contents.
func (s *LocalStore) Update(ctx context.Context, _ string, id string, patch model.TemplatePatch) error {
	templates := s.cache.Records(ctx)
	for i := range templates {
		if templates[i].ID == id {
			patch.Apply(&templates[i])
			s.cache.SaveRecords(ctx, templates)
			return nil
		}
	}
	return driven.ErrTemplateNotFound
}
