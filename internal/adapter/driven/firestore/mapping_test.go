package firestore

import (
	"testing"
	"time"

	fs "google.golang.org/api/firestore/v1"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocToTemplate_FullDocument(t *testing.T) {
	lastUsed := "2024-05-01T08:30:00Z"
	doc := &fs.Document{
		Name: "projects/p/databases/(default)/documents/templates/abc",
		Fields: map[string]fs.Value{
			"uid":        {StringValue: "u1"},
			"title":      {StringValue: "Greeting"},
			"body":       {StringValue: "Hello!"},
			"tags":       {ArrayValue: &fs.ArrayValue{Values: []*fs.Value{{StringValue: "intro"}, {StringValue: "sales"}}}},
			"favorite":   {BooleanValue: true},
			"useCount":   {IntegerValue: 7},
			"lastUsedAt": {TimestampValue: lastUsed},
			"createdAt":  {TimestampValue: "2024-01-01T00:00:00Z"},
			"archived":   {BooleanValue: false},
		},
	}

	tmpl := docToTemplate(doc)

	assert.Equal(t, "abc", tmpl.ID)
	assert.Equal(t, "u1", tmpl.OwnerID)
	assert.Equal(t, "Greeting", tmpl.Title)
	assert.Equal(t, []string{"intro", "sales"}, tmpl.Tags)
	assert.True(t, tmpl.Favorite)
	assert.Equal(t, int64(7), tmpl.UseCount)
	require.NotNil(t, tmpl.LastUsedAt)
	assert.Equal(t, lastUsed, tmpl.LastUsedAt.Format(time.RFC3339))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tmpl.CreatedAt)
	assert.False(t, tmpl.Archived)
}

func TestDocToTemplate_MissingCreatedAtUsesServerCreateTime(t *testing.T) {
	doc := &fs.Document{
		Name:       "projects/p/databases/(default)/documents/templates/abc",
		Fields:     map[string]fs.Value{"uid": {StringValue: "u1"}},
		CreateTime: "2024-02-02T00:00:00Z",
	}

	tmpl := docToTemplate(doc)
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), tmpl.CreatedAt)
}

func TestDocToTemplate_NoTimestampsDefaultsCreatedAtToNow(t *testing.T) {
	start := time.Now().UTC()
	doc := &fs.Document{
		Name:   "projects/p/databases/(default)/documents/templates/abc",
		Fields: map[string]fs.Value{},
	}

	tmpl := docToTemplate(doc)
	assert.False(t, tmpl.CreatedAt.Before(start))
	assert.Nil(t, tmpl.LastUsedAt, "lastUsedAt is never defaulted")
}

func TestTemplateFields_OmitsAbsentLastUsed(t *testing.T) {
	fields := templateFields(model.Template{
		OwnerID:   "u1",
		Title:     "A",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	_, hasLastUsed := fields["lastUsedAt"]
	assert.False(t, hasLastUsed)
	assert.Equal(t, "2024-01-01T00:00:00Z", fields["createdAt"].TimestampValue)
}

func TestValueConstructors_ForceSendZeroValues(t *testing.T) {
	assert.Contains(t, strVal("").ForceSendFields, "StringValue")
	assert.Empty(t, strVal("x").ForceSendFields)
	assert.Contains(t, boolVal(false).ForceSendFields, "BooleanValue")
	assert.Contains(t, intVal(0).ForceSendFields, "IntegerValue")
}
