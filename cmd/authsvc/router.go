package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/environment"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/requestid"
	"github.com/dmitrymomot/authgate/svc/auth"
)

const readinessTimeout = 2 * time.Second

func newRouter(finder auth.TokenFinder, env environment.Environment, log *slog.Logger, probes ...httpserver.Probe) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		environment.Middleware(env),
		accessLog(log),
		middleware.Recoverer,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = core.JSONError(core.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = core.JSONError(core.ErrMethodNotAllowed).Render(w, r)
	})

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, readinessTimeout, probes...))

	auth.NewHandler(finder, log).Routes(r)
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "request served",
				logger.HTTPRequest(r.Method, r.URL.Path, status),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
