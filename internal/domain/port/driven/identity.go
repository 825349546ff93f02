package driven

import "context"

// Identity defines the driven port for the session identity provider. The
// persistence layer trusts the caller: the ownerID passed to store operations
// must be the provider's current subject, and nothing here enforces that.
type Identity interface {
	// OwnerID returns the identifier of the authenticated user for this
	// session.
	OwnerID() string

	// Token returns a bearer credential accepted by the remote store.
	Token(ctx context.Context) (string, error)
}
