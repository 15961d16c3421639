package auth_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/tokenstore"
	"github.com/dmitrymomot/authgate/svc/auth"
)

type envelope struct {
	Code  string            `json:"code"`
	Data  map[string]any    `json:"data"`
	Error *core.ErrorDetail `json:"error"`
}

// binaryValue is not valid UTF-8.
var binaryValue = []byte{0xff, 0xfe, 'a', 0x00, 0xc3}

func decodeBase64(t *testing.T, v any) []byte {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok)
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	return b
}

func setup(t *testing.T) (*tokenstore.MemoryStore, http.Handler) {
	t.Helper()
	store := tokenstore.NewMemoryStore(map[string][]byte{
		"abc123": []byte("session-payload-1"),
	})
	r := chi.NewRouter()
	auth.NewHandler(tokenstore.New(store), nil).Routes(r)
	return store, r
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestSessionEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("resolves bearer token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "session", body.Code)
		assert.Equal(t, "session-payload-1", body.Data["value"])
	})

	t.Run("binary value round-trips", func(t *testing.T) {
		t.Parallel()
		store, h := setup(t)
		store.Set("bin", binaryValue)
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer bin")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, auth.EncodingBase64, body.Data["encoding"])
		assert.Equal(t, binaryValue, decodeBase64(t, body.Data["value"]))
	})

	t.Run("text value has no encoding marker", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		_, body := do(t, h, req)
		assert.NotContains(t, body.Data, "encoding")
	})

	t.Run("accepts fallback header", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set(auth.TokenHeader, "abc123")

		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/v1/session", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", body.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer doesnotexist")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", body.Code)
	})

	t.Run("store outage", func(t *testing.T) {
		t.Parallel()
		store, h := setup(t)
		store.SetUnavailable(errors.New("connection refused"))
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "service_unavailable", body.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestIntrospectEndpoint(t *testing.T) {
	t.Parallel()

	introspect := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/tokens/introspect", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("active token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		rec, body := do(t, h, introspect(`{"token":"abc123"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body.Data["active"])
		assert.Equal(t, "session-payload-1", body.Data["value"])
	})

	t.Run("inactive token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		rec, body := do(t, h, introspect(`{"token":"doesnotexist"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body.Data["active"])
		assert.NotContains(t, body.Data, "value")
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		rec, body := do(t, h, introspect(`{"token":""}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", body.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		for _, b := range []string{`{`, `{"token":"a","extra":1}`, `{"token":"a"}{"token":"b"}`} {
			rec, _ := do(t, h, introspect(b))
			assert.Equal(t, http.StatusBadRequest, rec.Code, b)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		rec, body := do(t, h, introspect(`{"token":"`+strings.Repeat("a", 8<<10)+`"}`))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "request_entity_too_large", body.Code)
	})

	t.Run("rejects non-json content type", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		for _, ct := range []string{"text/plain", "", "application/x-www-form-urlencoded"} {
			req := httptest.NewRequest(http.MethodPost, "/v1/tokens/introspect", strings.NewReader(`{"token":"abc123"}`))
			if ct != "" {
				req.Header.Set("Content-Type", ct)
			}
			rec, body := do(t, h, req)
			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code, ct)
			assert.Equal(t, "unsupported_media_type", body.Code, ct)
		}
	})

	t.Run("accepts json with charset", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/tokens/introspect", strings.NewReader(`{"token":"abc123"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body.Data["active"])
	})

	t.Run("binary value is base64 encoded", func(t *testing.T) {
		t.Parallel()
		store, h := setup(t)
		store.Set("bin", binaryValue)
		rec, body := do(t, h, introspect(`{"token":"bin"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, auth.EncodingBase64, body.Data["encoding"])
		assert.Equal(t, binaryValue, decodeBase64(t, body.Data["value"]))
	})

	t.Run("store outage", func(t *testing.T) {
		t.Parallel()
		store, h := setup(t)
		store.SetUnavailable(errors.New("timeout"))
		rec, body := do(t, h, introspect(`{"token":"abc123"}`))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "service_unavailable", body.Code)
	})
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "bearer", header: map[string]string{"Authorization": "Bearer abc"}, want: "abc"},
		{name: "bearer lowercase scheme", header: map[string]string{"Authorization": "bearer abc"}, want: "abc"},
		{name: "basic scheme ignored", header: map[string]string{"Authorization": "Basic abc"}, want: ""},
		{name: "basic scheme falls through to header", header: map[string]string{"Authorization": "Basic abc", auth.TokenHeader: "xyz"}, want: "xyz"},
		{name: "empty bearer falls through to header", header: map[string]string{"Authorization": "Bearer  ", auth.TokenHeader: "xyz"}, want: "xyz"},
		{name: "authorization wins over fallback", header: map[string]string{"Authorization": "Bearer abc", auth.TokenHeader: "xyz"}, want: "abc"},
		{name: "fallback header", header: map[string]string{auth.TokenHeader: " xyz "}, want: "xyz"},
		{name: "none", header: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, auth.TokenFromRequest(req))
		})
	}
}

func TestMiddleware_StoresSession(t *testing.T) {
	t.Parallel()
	gw := tokenstore.New(tokenstore.NewMemoryStore(map[string][]byte{"abc123": []byte("v")}))

	var got auth.Session
	var ok bool
	h := auth.Middleware(gw, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, "abc123", got.Token)
	assert.Equal(t, []byte("v"), got.Value)
}

func TestMiddleware_NonBearerSchemeUsesFallbackHeader(t *testing.T) {
	t.Parallel()
	_, h := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.Header.Set(auth.TokenHeader, "abc123")

	rec, body := do(t, h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-payload-1", body.Data["value"])
}

func TestMiddleware_NilFinderPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { auth.Middleware(nil, nil) })
}
