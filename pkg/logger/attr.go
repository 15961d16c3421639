package logger

import (
	"log/slog"
	"time"
	"unicode/utf8"
)

const (
	// tokenHintLen is how many leading characters of a token may appear in logs.
	tokenHintLen = 4
	// tokenHintMinLen is the shortest token, in characters, that gets a hint.
	tokenHintMinLen = 17
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// TokenHint records a redacted form of a session token under the key "token".
// Tokens of at least tokenHintMinLen characters keep their first
// tokenHintLen characters; shorter tokens are fully masked.
func TokenHint(token string) slog.Attr {
	if utf8.RuneCountInString(token) < tokenHintMinLen {
		return slog.String("token", "***")
	}
	end := 0
	for range tokenHintLen {
		_, size := utf8.DecodeRuneInString(token[end:])
		end += size
	}
	return slog.String("token", token[:end]+"***")
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// HTTPRequest groups the method, path and status of a served request.
func HTTPRequest(method, path string, status int) slog.Attr {
	return Group("http",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
	)
}
