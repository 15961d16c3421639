package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// maxIntrospectBody bounds the introspection request body.
const maxIntrospectBody = 4 << 10

// EncodingBase64 marks a value that is not valid UTF-8 and was sent base64-encoded.
const EncodingBase64 = "base64"

// SessionData is the payload of GET /v1/session.
type SessionData struct {
	Value    string `json:"value"`
	Encoding string `json:"encoding,omitempty"`
}

// IntrospectRequest is the body of POST /v1/tokens/introspect.
type IntrospectRequest struct {
	Token string `json:"token"`
}

// IntrospectData reports whether a token resolves and, if so, its value.
type IntrospectData struct {
	Active   bool   `json:"active"`
	Value    string `json:"value,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// Handler serves the token endpoints of the authentication service.
type Handler struct {
	finder TokenFinder
	log    *slog.Logger
}

func NewHandler(finder TokenFinder, log *slog.Logger) *Handler {
	if finder == nil {
		panic(ErrNilTokenStore)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{finder: finder, log: log.With(logger.Component("auth"))}
}

// Routes mounts the endpoints on r:
//
//	GET  /v1/session            bearer-authenticated, returns the stored value
//	POST /v1/tokens/introspect  resolves a token passed in the body
func (h *Handler) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.With(Middleware(h.finder, h.log)).Get("/session", h.Session)
		r.Post("/tokens/introspect", h.Introspect)
	})
}

// Session returns the value resolved by Middleware.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFromContext(r.Context())
	if !ok {
		renderError(w, r, core.ErrUnauthorized)
		return
	}
	value, encoding := encodeValue(s.Value)
	h.render(w, r, core.JSON("session", SessionData{Value: value, Encoding: encoding}))
}

// Introspect reports whether the token in the body resolves. Unknown tokens
// are inactive; an empty token is a bad request.
func (h *Handler) Introspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IntrospectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.DebugContext(ctx, "invalid introspection request", logger.Error(err))
		renderError(w, r, err)
		return
	}
	if req.Token == "" {
		renderError(w, r, errors.Join(core.ErrBadRequest, ErrMissingToken))
		return
	}

	value, found, err := h.finder.FindToken(ctx, req.Token)
	if err != nil {
		renderError(w, r, errors.Join(core.ErrServiceUnavailable, err))
		return
	}
	if !found {
		h.render(w, r, core.JSON("introspection", IntrospectData{Active: false}))
		return
	}
	v, encoding := encodeValue(value)
	h.render(w, r, core.JSON("introspection", IntrospectData{Active: true, Value: v, Encoding: encoding}))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, resp core.Response) {
	if err := resp.Render(w, r); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
	}
}

// encodeValue returns b as text when it is valid UTF-8 and base64 otherwise,
// so opaque payloads survive JSON encoding byte for byte.
func encodeValue(b []byte) (value, encoding string) {
	if utf8.Valid(b) {
		return string(b), ""
	}
	return base64.StdEncoding.EncodeToString(b), EncodingBase64
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.Join(core.ErrUnsupportedMedia, ErrInvalidBody)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIntrospectBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.Join(core.ErrRequestTooLarge, err)
		}
		return errors.Join(core.ErrBadRequest, ErrInvalidBody, err)
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		return errors.Join(core.ErrBadRequest, ErrInvalidBody)
	}
	return nil
}
