package auth

import (
	"net/http"
	"strings"
)

// TokenHeader is the fallback header for clients that cannot send Authorization.
const TokenHeader = "X-Auth-Token"

// TokenFromRequest extracts the session token from "Authorization: Bearer <t>"
// or, failing that, from X-Auth-Token. Non-Bearer Authorization schemes are
// skipped. Returns "" when neither yields a token.
func TokenFromRequest(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}
