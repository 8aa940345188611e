package app

import (
	"context"

	"todoapi/internal/model"
)

type identityContextKey struct{}

// WithIdentity binds the authenticated user into the request context.
// The auth gate calls this on success; handlers and services read it
// back with IdentityFrom.
func WithIdentity(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, identityContextKey{}, user)
}

func IdentityFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(identityContextKey{}).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
