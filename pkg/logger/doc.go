// Package logger builds the service's *slog.Logger.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the chosen slog handler with
// LogHandlerDecorator so request-scoped values such as the request id are
// added to every record logged with a context:
//
//	log, err := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Attribute helpers (Error, RequestID, TokenHint, HTTPRequest, ...) keep key
// names consistent. TokenHint must be used whenever a session token is
// logged; raw tokens never go to the log.
package logger
