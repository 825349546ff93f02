package firestore

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// identityTokenSource adapts the Identity port to oauth2.TokenSource so the
// generated Firestore client can use the session's bearer credential.
type identityTokenSource struct {
	identity driven.Identity
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from the Identity port, for
// use by NewClient when constructing the authenticated HTTP client.
func NewTokenSource(ctx context.Context, identity driven.Identity) oauth2.TokenSource {
	return &identityTokenSource{identity: identity, ctx: ctx}
}

// Token implements oauth2.TokenSource.
func (t *identityTokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := t.identity.Token(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
