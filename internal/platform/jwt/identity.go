package jwtmw

import "context"

// Identity is the authenticated principal attached to a request.
// It is built from live storage on every request and discarded afterwards.
type Identity struct {
	UserID       uint
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Admin        bool
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the Authenticate middleware.
// The second result is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}
