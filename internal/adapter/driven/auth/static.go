// Package auth provides identity providers for the persistence layer.
package auth

import (
	"context"
	"errors"

	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Identity = (*StaticProvider)(nil)

// StaticProvider is an Identity backed by a fixed owner id and bearer token,
// both supplied by the environment. The interactive sign-in flow lives in the
// browser clients; the service itself only ever sees an already-issued token.
type StaticProvider struct {
	ownerID string
	token   string
}

// NewStaticProvider creates a StaticProvider for the given owner and token.
func NewStaticProvider(ownerID, token string) *StaticProvider {
	return &StaticProvider{ownerID: ownerID, token: token}
}

// OwnerID returns the configured owner identifier.
func (p *StaticProvider) OwnerID() string {
	return p.ownerID
}

// Token returns the configured bearer token.
func (p *StaticProvider) Token(_ context.Context) (string, error) {
	if p.token == "" {
		return "", errors.New("no bearer token configured")
	}
	return p.token, nil
}
