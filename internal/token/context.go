package token

import (
	"context"

	userentity "github.com/rentfold/service-core/internal/user/entity"
)

type ctxKey struct{}

// WithUser attaches the authenticated user to the request context.
func WithUser(ctx context.Context, u *userentity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the authenticated user, or nil when the request did not
// pass the auth middleware.
func UserFrom(ctx context.Context) *userentity.User {
	u, _ := ctx.Value(ctxKey{}).(*userentity.User)
	return u
}
