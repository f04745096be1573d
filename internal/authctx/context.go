// Package authctx carries the authenticated caller identity through
// request context. The identity is set once by the auth middleware at
// the start of a request and torn down with the request; nothing is
// stored in process-global state.
package authctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	UserID   snowflake.ID
	Email    string
	Role     string
	OfficeID *snowflake.ID
}

type identityKey struct{}

// WithIdentity stores the caller identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, if set.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
