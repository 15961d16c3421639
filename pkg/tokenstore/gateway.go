package tokenstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Getter is the single-key read capability the gateway depends on.
// Implementations report a missing key with found == false and a nil error.
type Getter interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
}

// GetterFunc adapts an ordinary function to the Getter interface.
type GetterFunc func(ctx context.Context, key string) ([]byte, bool, error)

// Get calls f(ctx, key).
func (f GetterFunc) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return f(ctx, key)
}

// Gateway resolves opaque session tokens against a shared key-value store.
// It holds no per-call state and is safe for concurrent use.
type Gateway struct {
	store  Getter
	logger *slog.Logger
}

// New creates a gateway reading through the given store.
// Panics if store is nil: a gateway without a store is a wiring bug.
func New(store Getter, opts ...Option) *Gateway {
	if store == nil {
		panic(ErrNilGetter)
	}

	g := &Gateway{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(logger.Component("tokenstore"))
	return g
}

// FindToken returns the value stored under token.
//
// A token without a stored value yields found == false and a nil error.
// An empty token is treated as absent and never reaches the store.
// Store failures are returned as ErrStoreUnavailable joined with the store error.
func (g *Gateway) FindToken(ctx context.Context, token string) ([]byte, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	value, found, err := g.store.Get(ctx, token)
	if err != nil {
		g.logger.ErrorContext(ctx, "token lookup failed",
			logger.TokenHint(token),
			logger.Error(err),
		)
		return nil, false, errors.Join(ErrStoreUnavailable, err)
	}

	if !found {
		g.logger.DebugContext(ctx, "token not found", logger.TokenHint(token))
		return nil, false, nil
	}

	g.logger.DebugContext(ctx, "token resolved", logger.TokenHint(token))
	return value, true, nil
}
