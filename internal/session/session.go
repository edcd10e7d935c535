// Package session carries the authenticated user's identity through a request.
package session

import "context"

type ctxKey struct{}

// Identity is the signed in user as reported by the authentication provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Provider reports the current session identity, if any.
type Provider interface {
	Current(ctx context.Context) (*Identity, bool)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored on ctx.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	if !ok || id == nil || id.UID == "" {
		return nil, false
	}
	return id, true
}

// ContextProvider reads the identity the auth middleware stored on the context.
type ContextProvider struct{}

func (ContextProvider) Current(ctx context.Context) (*Identity, bool) {
	return FromContext(ctx)
}

// Static always reports the same identity. A nil identity means signed out.
type Static struct {
	Identity *Identity
}

func (s Static) Current(context.Context) (*Identity, bool) {
	if s.Identity == nil || s.Identity.UID == "" {
		return nil, false
	}
	return s.Identity, true
}
