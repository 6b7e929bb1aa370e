package middleware

import "context"

type contextKey string

const identityContextKey contextKey = "admin_identity"

// AdminIdentity is the authenticated caller resolved from a bearer token.
// Organization is the sole authorization scope for mutating operations.
type AdminIdentity struct {
	Email        string
	Organization string
}

// WithIdentity injects the authenticated admin into the context.
func WithIdentity(ctx context.Context, identity *AdminIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the authenticated admin, or nil.
func IdentityFromContext(ctx context.Context) *AdminIdentity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	id, _ := v.(*AdminIdentity)
	return id
}
