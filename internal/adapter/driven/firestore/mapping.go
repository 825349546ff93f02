package firestore

import (
	"path"
	"time"

	fs "google.golang.org/api/firestore/v1"

	"github.com/danahertz/pastebook/internal/domain/model"
)

// Firestore field names, shared with the local cache's JSON layout.
const (
	fieldOwner     = "uid"
	fieldTitle     = "title"
	fieldBody      = "body"
	fieldTags      = "tags"
	fieldFavorite  = "favorite"
	fieldUseCount  = "useCount"
	fieldLastUsed  = "lastUsedAt"
	fieldCreatedAt = "createdAt"
	fieldArchived  = "archived"
)

// docToTemplate maps a Firestore document to the domain model. Timestamp
// values are normalized to UTC time.Time. A missing createdAt falls back to
// the document's server CreateTime, then to now; a missing lastUsedAt stays
// nil.
func docToTemplate(doc *fs.Document) model.Template {
	f := doc.Fields

	tmpl := model.Template{
		ID:       path.Base(doc.Name),
		OwnerID:  getString(f, fieldOwner),
		Title:    getString(f, fieldTitle),
		Body:     getString(f, fieldBody),
		Tags:     getStrings(f, fieldTags),
		Favorite: getBool(f, fieldFavorite),
		UseCount: getInt(f, fieldUseCount),
		Archived: getBool(f, fieldArchived),
	}

	if ts, ok := getTime(f, fieldLastUsed); ok {
		tmpl.LastUsedAt = &ts
	}

	if ts, ok := getTime(f, fieldCreatedAt); ok {
		tmpl.CreatedAt = ts
	} else if ts, err := parseTimestamp(doc.CreateTime); err == nil {
		tmpl.CreatedAt = ts
	} else {
		tmpl.CreatedAt = time.Now().UTC()
	}

	return tmpl
}

// templateFields maps a full template to its Firestore field set. lastUsedAt
// is written only when set; absence means the template has never been used.
func templateFields(tmpl model.Template) map[string]fs.Value {
	fields := map[string]fs.Value{
		fieldOwner:     *strVal(tmpl.OwnerID),
		fieldTitle:     *strVal(tmpl.Title),
		fieldBody:      *strVal(tmpl.Body),
		fieldTags:      *arrVal(tmpl.Tags),
		fieldFavorite:  *boolVal(tmpl.Favorite),
		fieldUseCount:  *intVal(tmpl.UseCount),
		fieldCreatedAt: *timeVal(tmpl.CreatedAt),
		fieldArchived:  *boolVal(tmpl.Archived),
	}
	if tmpl.LastUsedAt != nil {
		fields[fieldLastUsed] = *timeVal(*tmpl.LastUsedAt)
	}
	return fields
}

func getString(f map[string]fs.Value, key string) string {
	if v, ok := f[key]; ok {
		return v.StringValue
	}
	return ""
}

func getBool(f map[string]fs.Value, key string) bool {
	if v, ok := f[key]; ok {
		return v.BooleanValue
	}
	return false
}

func getInt(f map[string]fs.Value, key string) int64 {
	if v, ok := f[key]; ok {
		return v.IntegerValue
	}
	return 0
}

func getStrings(f map[string]fs.Value, key string) []string {
	out := []string{}
	v, ok := f[key]
	if !ok || v.ArrayValue == nil {
		return out
	}
	for _, elem := range v.ArrayValue.Values {
		if elem != nil {
			out = append(out, elem.StringValue)
		}
	}
	return out
}

// getTime returns the normalized timestamp under key. ok is false when the
// field is absent, null, or malformed.
func getTime(f map[string]fs.Value, key string) (time.Time, bool) {
	v, ok := f[key]
	if !ok || v.TimestampValue == "" {
		return time.Time{}, false
	}
	ts, err := parseTimestamp(v.TimestampValue)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// Value constructors. The generated client omits zero-valued fields from the
// request body unless they are force-sent, and Firestore would drop them.

func strVal(s string) *fs.Value {
	v := &fs.Value{StringValue: s}
	if s == "" {
		v.ForceSendFields = []string{"StringValue"}
	}
	return v
}

func boolVal(b bool) *fs.Value {
	v := &fs.Value{BooleanValue: b}
	if !b {
		v.ForceSendFields = []string{"BooleanValue"}
	}
	return v
}

func intVal(i int64) *fs.Value {
	v := &fs.Value{IntegerValue: i}
	if i == 0 {
		v.ForceSendFields = []string{"IntegerValue"}
	}
	return v
}

func timeVal(t time.Time) *fs.Value {
	return &fs.Value{TimestampValue: t.UTC().Format(time.RFC3339Nano)}
}

func arrVal(elems []string) *fs.Value {
	values := make([]*fs.Value, 0, len(elems))
	for _, s := range elems {
		values = append(values, strVal(s))
	}
	return &fs.Value{ArrayValue: &fs.ArrayValue{Values: values}}
}
