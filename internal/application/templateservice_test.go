package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// fakeTemplateStore counts calls and returns canned results.
type fakeTemplateStore struct {
	calls     int
	templates []model.Template
	err       error
}

func (f *fakeTemplateStore) List(_ context.Context, _ string) ([]model.Template, error) {
	f.calls++
	return f.templates, f.err
}

func (f *fakeTemplateStore) Create(_ context.Context, ownerID string, fields model.TemplateFields) (*model.Template, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Template{ID: "new", OwnerID: ownerID, Title: fields.Title, CreatedAt: time.Now().UTC()}, nil
}

func (f *fakeTemplateStore) Upsert(_ context.Context, _ string, _ model.Template) error {
	f.calls++
	return f.err
}

func (f *fakeTemplateStore) Update(_ context.Context, _, _ string, _ model.TemplatePatch) error {
	f.calls++
	return f.err
}

// fakeCache records operations in memory.
type fakeCache struct {
	records  []model.Template
	settings model.Settings
	cleared  bool
}

func (f *fakeCache) Records(_ context.Context) []model.Template { return f.records }
func (f *fakeCache) SaveRecords(_ context.Context, templates []model.Template) {
	f.records = templates
}
func (f *fakeCache) Settings(_ context.Context) model.Settings { return f.settings }
func (f *fakeCache) SaveSettings(_ context.Context, settings model.Settings) {
	f.settings = settings
}
func (f *fakeCache) ClearAll(_ context.Context) { f.cleared = true }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTemplateService_UnconfiguredServesLocalOnly(t *testing.T) {
	local := &fakeTemplateStore{templates: []model.Template{{ID: "a"}}}
	cache := &fakeCache{}

	svc := NewTemplateService(nil, local, cache, testLogger())
	assert.False(t, svc.RemoteEnabled())

	templates, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, templates, 1)
	assert.Equal(t, 1, local.calls)
}

func TestTemplateService_ConfiguredServesRemoteOnly(t *testing.T) {
	remote := &fakeTemplateStore{templates: []model.Template{{ID: "r"}}}
	local := &fakeTemplateStore{templates: []model.Template{{ID: "l"}}}
	cache := &fakeCache{}

	svc := NewTemplateService(remote, local, cache, testLogger())
	assert.True(t, svc.RemoteEnabled())

	templates, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "r", templates[0].ID)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 0, local.calls, "local backend must never be consulted in remote mode")
}

func TestTemplateService_RemoteErrorsPropagateUnretried(t *testing.T) {
	remoteErr := fmt.Errorf("list templates: %w: connection refused", driven.ErrRemoteUnavailable)
	remote := &fakeTemplateStore{err: remoteErr}
	local := &fakeTemplateStore{}

	svc := NewTemplateService(remote, local, &fakeCache{}, testLogger())

	_, err := svc.List(context.Background(), "u1")
	assert.ErrorIs(t, err, driven.ErrRemoteUnavailable)
	assert.Equal(t, 1, remote.calls, "the facade never retries")
	assert.Equal(t, 0, local.calls, "the facade never falls back mid-call")
}

func TestTemplateService_WritesGoToSelectedBackend(t *testing.T) {
	remote := &fakeTemplateStore{}
	local := &fakeTemplateStore{}
	svc := NewTemplateService(remote, local, &fakeCache{}, testLogger())

	_, err := svc.Create(context.Background(), "u1", model.TemplateFields{Title: "A"})
	require.NoError(t, err)
	require.NoError(t, svc.Upsert(context.Background(), "u1", model.Template{ID: "x"}))
	title := "B"
	require.NoError(t, svc.Update(context.Background(), "u1", "x", model.TemplatePatch{Title: &title}))

	assert.Equal(t, 3, remote.calls)
	assert.Equal(t, 0, local.calls)
}

func TestTemplateService_SettingsAlwaysLocal(t *testing.T) {
	remote := &fakeTemplateStore{}
	cache := &fakeCache{settings: model.Settings{"theme": "dark"}}
	svc := NewTemplateService(remote, &fakeTemplateStore{}, cache, testLogger())

	got := svc.Settings(context.Background())
	assert.Equal(t, "dark", got["theme"])

	svc.SaveSettings(context.Background(), model.Settings{"theme": "light"})
	assert.Equal(t, "light", cache.settings["theme"])
	assert.Equal(t, 0, remote.calls, "settings never touch the template backend")
}

func TestTemplateService_ClearLocalOnlyTouchesCache(t *testing.T) {
	remote := &fakeTemplateStore{}
	cache := &fakeCache{records: []model.Template{{ID: "a"}}}
	svc := NewTemplateService(remote, &fakeTemplateStore{}, cache, testLogger())

	svc.ClearLocal(context.Background())

	assert.True(t, cache.cleared)
	assert.Equal(t, 0, remote.calls)
}
