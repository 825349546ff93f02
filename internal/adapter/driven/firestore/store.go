package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	fs "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"

	"github.com/danahertz/pastebook/internal/domain/model"
	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TemplateStore = (*Client)(nil)

// List returns the templates owned by ownerID, newest first. The ordered
// query needs a composite index on (uid, createdAt); when Firestore reports
// the index as missing, the same filter is re-issued without the ordering
// clause and the result is sorted here instead. The indexed path is
// re-attempted on every call: index provisioning is an operational concern
// this layer cannot observe, so nothing is memoized.
func (c *Client) List(ctx context.Context, ownerID string) ([]model.Template, error) {
	templates, err := c.queryTemplates(ctx, ownerID, true)
	if isMissingIndex(err) {
		templates, err = c.queryTemplates(ctx, ownerID, false)
		if err == nil {
			sort.SliceStable(templates, func(i, j int) bool {
				return templates[i].CreatedAt.After(templates[j].CreatedAt)
			})
		}
	}
	if err != nil {
		return nil, remoteErr("list templates", err)
	}
	return templates, nil
}

// Create stores a new template owned by ownerID. The write goes through the
// commit endpoint so the creation timestamp is assigned by the backend's
// clock via a REQUEST_TIME transform rather than ours; the exists=false
// precondition keeps a colliding id from silently overwriting a document.
func (c *Client) Create(ctx context.Context, ownerID string, fields model.TemplateFields) (*model.Template, error) {
	tmpl := model.Template{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Title:    fields.Title,
		Body:     fields.Body,
		Tags:     fields.Tags,
		Favorite: fields.Favorite,
		Archived: fields.Archived,
	}

	docFields := templateFields(tmpl)
	delete(docFields, fieldCreatedAt)

	req := &fs.CommitRequest{
		Writes: []*fs.Write{{
			Update: &fs.Document{Name: c.documentName(tmpl.ID), Fields: docFields},
			UpdateTransforms: []*fs.FieldTransform{{
				FieldPath:        fieldCreatedAt,
				SetToServerValue: "REQUEST_TIME",
			}},
			CurrentDocument: &fs.Precondition{Exists: false, ForceSendFields: []string{"Exists"}},
		}},
	}

	resp, err := c.svc.Projects.Databases.Documents.Commit(c.databaseName(), req).
		Context(ctx).Do()
	if err != nil {
		return nil, remoteErr("create template", err)
	}

	tmpl.CreatedAt = commitCreateTime(resp)
	return &tmpl, nil
}

// commitCreateTime extracts the server-assigned creation timestamp from a
// commit response: the transform result carries it, with the commit time as
// the fallback.
func commitCreateTime(resp *fs.CommitResponse) time.Time {
	if len(resp.WriteResults) > 0 {
		results := resp.WriteResults[0].TransformResults
		if len(results) > 0 && results[0] != nil {
			if ts, err := parseTimestamp(results[0].TimestampValue); err == nil {
				return ts
			}
		}
	}
	if ts, err := parseTimestamp(resp.CommitTime); err == nil {
		return ts
	}
	return time.Now().UTC()
}

// Upsert writes tmpl at its caller-supplied id, replacing the full document.
// When the document already exists its createdAt is kept; only a document
// without one gets a fresh creation timestamp.
func (c *Client) Upsert(ctx context.Context, ownerID string, tmpl model.Template) error {
	name := c.documentName(tmpl.ID)

	existing, err := c.svc.Projects.Databases.Documents.Get(name).Context(ctx).Do()
	switch {
	case err == nil:
		if ts, ok := getTime(existing.Fields, fieldCreatedAt); ok {
			tmpl.CreatedAt = ts
		}
	case isNotFound(err):
		// New document; keep the caller-supplied createdAt if any.
	default:
		return remoteErr("load template "+tmpl.ID, err)
	}

	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = time.Now().UTC()
	}
	tmpl.OwnerID = ownerID

	doc := &fs.Document{Fields: templateFields(tmpl)}
	_, err = c.svc.Projects.Databases.Documents.Patch(name, doc).Context(ctx).Do()
	if err != nil {
		return remoteErr("upsert template "+tmpl.ID, err)
	}
	return nil
}

// Update merges the named patch fields into the stored document. The update
// mask always includes uid so a partial update cannot change ownership, and
// never includes createdAt.
func (c *Client) Update(ctx context.Context, ownerID, id string, patch model.TemplatePatch) error {
	fields := map[string]fs.Value{fieldOwner: *strVal(ownerID)}
	paths := []string{fieldOwner}

	if patch.Title != nil {
		fields[fieldTitle] = *strVal(*patch.Title)
		paths = append(paths, fieldTitle)
	}
	if patch.Body != nil {
		fields[fieldBody] = *strVal(*patch.Body)
		paths = append(paths, fieldBody)
	}
	if patch.Tags != nil {
		fields[fieldTags] = *arrVal(patch.Tags)
		paths = append(paths, fieldTags)
	}
	if patch.Favorite != nil {
		fields[fieldFavorite] = *boolVal(*patch.Favorite)
		paths = append(paths, fieldFavorite)
	}
	if patch.UseCount != nil {
		fields[fieldUseCount] = *intVal(*patch.UseCount)
		paths = append(paths, fieldUseCount)
	}
	if patch.LastUsedAt != nil {
		fields[fieldLastUsed] = *timeVal(*patch.LastUsedAt)
		paths = append(paths, fieldLastUsed)
	}
	if patch.Archived != nil {
		fields[fieldArchived] = *boolVal(*patch.Archived)
		paths = append(paths, fieldArchived)
	}

	doc := &fs.Document{Fields: fields}
	_, err := c.svc.Projects.Databases.Documents.Patch(c.documentName(id), doc).
		UpdateMaskFieldPaths(paths...).
		CurrentDocumentExists(true).
		Context(ctx).Do()
	if isNotFound(err) {
		return driven.ErrTemplateNotFound
	}
	if err != nil {
		return remoteErr("update template "+id, err)
	}
	return nil
}

// queryTemplates runs the owner-scoped structured query, optionally with the
// createdAt ordering clause.
func (c *Client) queryTemplates(ctx context.Context, ownerID string, ordered bool) ([]model.Template, error) {
	query := &fs.StructuredQuery{
		From: []*fs.CollectionSelector{{CollectionId: collectionID}},
		Where: &fs.Filter{
			FieldFilter: &fs.FieldFilter{
				Field: &fs.FieldReference{FieldPath: fieldOwner},
				Op:    "EQUAL",
				Value: strVal(ownerID),
			},
		},
	}
	if ordered {
		query.OrderBy = []*fs.Order{{
			Field:     &fs.FieldReference{FieldPath: fieldCreatedAt},
			Direction: "DESCENDING",
		}}
	}

	resps, err := c.runQuery(ctx, &fs.RunQueryRequest{StructuredQuery: query})
	if err != nil {
		return nil, err
	}

	templates := make([]model.Template, 0, len(resps))
	for _, resp := range resps {
		// Responses without a document carry query progress only.
		if resp == nil || resp.Document == nil {
			continue
		}
		templates = append(templates, docToTemplate(resp.Document))
	}
	return templates, nil
}

// runQuery issues the :runQuery call directly: the endpoint streams a JSON
// array of responses, which the generated client decodes as a single object,
// silently dropping all but the first result.
func (c *Client) runQuery(ctx context.Context, req *fs.RunQueryRequest) ([]*fs.RunQueryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	url := strings.TrimSuffix(c.svc.BasePath, "/") + "/v1/" + c.documentsParent() + ":runQuery"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, err
	}

	var out []*fs.RunQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return out, nil
}
