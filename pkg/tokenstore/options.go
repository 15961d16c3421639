package tokenstore

import "log/slog"

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used to report lookups. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}
