package auth

import "context"

// Session is a resolved token and the opaque value stored for it.
type Session struct {
	Token string
	Value []byte
}

type sessionContextKey struct{}

// SetSessionToContext stores a resolved session for handlers down the chain.
func SetSessionToContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored by Middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	return s, ok
}
