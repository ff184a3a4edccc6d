package auth

import "context"

type contextKey string

const userIDKey contextKey = "auth.userID"

// Identity reports which user a request acts for. Core services treat a
// missing user as "do nothing": mutating operations silently no-op and
// reads return empty results, mirroring a signed-out client.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// WithUserID returns a context carrying the authenticated user's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ContextIdentity reads the user ID placed on the context by the token
// middleware.
type ContextIdentity struct{}

// CurrentUserID implements Identity.
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// StaticIdentity always reports the same user. For tests.
type StaticIdentity struct {
	UserID string
}

// CurrentUserID implements Identity. An empty UserID means signed out.
func (s StaticIdentity) CurrentUserID(context.Context) (string, bool) {
	return s.UserID, s.UserID != ""
}
