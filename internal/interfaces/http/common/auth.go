package common

import "context"

// AuthenticatedUser is the identity extracted from a verified token.
type AuthenticatedUser struct {
	ID      string
	IsAdmin bool
}

type contextKey struct{}

var userContextKey contextKey

// ContextWithUser attaches the authenticated user to the request context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(userContextKey).(AuthenticatedUser)
	return user, ok
}
