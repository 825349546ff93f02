package model

import "time"

// Template represents a stored text template (snippet). The JSON tags match
// the Firestore field names so the local cache serializes records in the same
// shape the remote collection uses.
type Template struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"uid"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Tags       []string   `json:"tags"`
	Favorite   bool       `json:"favorite"`
	UseCount   int64      `json:"useCount"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"` // nil until first use.
	CreatedAt  time.Time  `json:"createdAt"`            // Set once at creation, never mutated.
	Archived   bool       `json:"archived"`
}

// TemplateFields carries the caller-supplied fields for a new template.
// The store assigns ID, OwnerID, and CreatedAt.
type TemplateFields struct {
	Title    string
	Body     string
	Tags     []string
	Favorite bool
	Archived bool
}

// TemplatePatch is a partial update. Nil fields are left unchanged.
// Ownership and creation time are not patchable; stores re-assert the owner
// on every update and never touch CreatedAt.
type TemplatePatch struct {
	Title      *string
	Body       *string
	Tags       []string
	Favorite   *bool
	UseCount   *int64
	LastUsedAt *time.Time
	Archived   *bool
}

// IsZero reports whether the patch names no fields at all.
func (p TemplatePatch) IsZero() bool {
	return p.Title == nil && p.Body == nil && p.Tags == nil &&
		p.Favorite == nil && p.UseCount == nil && p.LastUsedAt == nil &&
		p.Archived == nil
}

// Apply merges the patch into t, preserving OwnerID, ID, and CreatedAt.
func (p TemplatePatch) Apply(t *Template) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.Favorite != nil {
		t.Favorite = *p.Favorite
	}
	if p.UseCount != nil {
		t.UseCount = *p.UseCount
	}
	if p.LastUsedAt != nil {
		ts := *p.LastUsedAt
		t.LastUsedAt = &ts
	}
	if p.Archived != nil {
		t.Archived = *p.Archived
	}
}
