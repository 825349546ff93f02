// Package firestore implements the remote TemplateStore port on the
// Firestore v1 REST API.
package firestore

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	fs "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"
)

// collectionID is the Firestore collection holding template documents.
const collectionID = "templates"

// Client implements the driven.TemplateStore port against a Firestore
// project's default database. Each write is a single atomic document
// operation at the backend; the client holds no state between calls.
//
// Document CRUD goes through the generated service; Create uses the commit
// endpoint for its server-time field transform. runQuery streams a JSON
// array the generated client cannot decode, so that one call is issued
// directly over httpClient (see store.go).
type Client struct {
	svc        *fs.Service
	httpClient *http.Client
	projectID  string
}

// NewClient creates a Firestore client for the given project, authenticating
// every request through ts.
func NewClient(ctx context.Context, projectID string, ts oauth2.TokenSource) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, ts)

	svc, err := fs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}

	return &Client{svc: svc, httpClient: httpClient, projectID: projectID}, nil
}

// NewClientWithEndpoint creates a Client pointed at a custom base URL with
// authentication disabled. This constructor is intended for testing, allowing
// injection of an httptest server.
func NewClientWithEndpoint(ctx context.Context, projectID, endpoint string) (*Client, error) {
	svc, err := fs.NewService(ctx,
		option.WithEndpoint(endpoint),
		option.WithoutAuthentication(),
	)
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}

	return &Client{svc: svc, httpClient: http.DefaultClient, projectID: projectID}, nil
}

// databaseName is the resource name of the project's default database.
func (c *Client) databaseName() string {
	return fmt.Sprintf("projects/%s/databases/(default)", c.projectID)
}

// documentsParent is the resource name all template documents live under.
func (c *Client) documentsParent() string {
	return c.databaseName() + "/documents"
}

// documentName returns the full resource name for a template id.
func (c *Client) documentName(id string) string {
	return c.documentsParent() + "/" + collectionID + "/" + id
}
