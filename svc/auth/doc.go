// Package auth is the HTTP surface of the authentication service.
//
// Middleware resolves the bearer token of each request through a
// TokenFinder (normally *tokenstore.Gateway) and stores the result in the
// request context. Handler exposes the session and introspection endpoints:
//
//	r := chi.NewRouter()
//	auth.NewHandler(gateway, log).Routes(r)
//
// Unknown tokens map to 401 (or "active": false on introspection); a failing
// token store maps to 503 so callers can tell an outage from a bad token.
package auth
