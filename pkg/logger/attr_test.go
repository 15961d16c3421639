package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestTokenHint(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "long token keeps prefix", token: "abcdef0123456789x", want: "abcd***"},
		{name: "sixteen characters fully masked", token: "abcdef0123456789", want: "***"},
		{name: "nine characters fully masked", token: "abcdefghi", want: "***"},
		{name: "short token fully masked", token: "abc123", want: "***"},
		{name: "multi-byte prefix cut on rune boundary", token: "ééééé0123456789abc", want: "éééé***"},
		{name: "multi-byte short token fully masked", token: "éééééééééé", want: "***"},
		{name: "empty token", token: "", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := logger.TokenHint(tt.token)
			require.Equal(t, "token", attr.Key)
			assert.Equal(t, tt.want, attr.Value.String())
			assert.True(t, utf8.ValidString(attr.Value.String()))
		})
	}
}

func TestHTTPRequest(t *testing.T) {
	attr := logger.HTTPRequest("GET", "/v1/session", 200)
	require.Equal(t, "http", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 3)
	assert.Equal(t, int64(200), g[2].Value.Int64())
}

func TestDurationAndComponent(t *testing.T) {
	assert.Equal(t, "duration", logger.Duration(time.Second).Key)
	assert.Equal(t, "tokenstore", logger.Component("tokenstore").Value.String())
}
