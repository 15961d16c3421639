package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// TokenFinder resolves a session token. *tokenstore.Gateway implements it.
type TokenFinder interface {
	FindToken(ctx context.Context, token string) ([]byte, bool, error)
}

// Middleware authenticates requests by resolving their session token.
//
// Requests without a token or with an unknown token get 401; a failing
// token store gets 503. Resolved sessions are available through
// SessionFromContext.
func Middleware(finder TokenFinder, log *slog.Logger) func(http.Handler) http.Handler {
	if finder == nil {
		panic(ErrNilTokenStore)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := TokenFromRequest(r)
			if token == "" {
				log.DebugContext(ctx, "request without session token")
				renderError(w, r, errors.Join(core.ErrUnauthorized, ErrMissingToken))
				return
			}

			value, found, err := finder.FindToken(ctx, token)
			if err != nil {
				renderError(w, r, errors.Join(core.ErrServiceUnavailable, err))
				return
			}
			if !found {
				log.DebugContext(ctx, "unknown session token", logger.TokenHint(token))
				renderError(w, r, errors.Join(core.ErrUnauthorized, ErrUnknownToken))
				return
			}

			ctx = SetSessionToContext(ctx, Session{Token: token, Value: value})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	_ = core.JSONError(err).Render(w, r)
}
