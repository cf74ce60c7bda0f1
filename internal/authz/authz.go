// Package authz implements the access-policy layer for dispute data.
// Every policy the platform once evaluated per-row is expressed here as a
// pure predicate of (principal, row, action), composed with a role resolver
// that reads membership with the service's own database handle.
package authz

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller identity threaded through every
// data-access call. It is established by the auth middleware and never
// inferred from ambient state.
type Principal struct {
	UserID uuid.UUID
	Lang   string
}

type contextKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFrom extracts the principal from the context.
// The second return is false when no principal is present.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
