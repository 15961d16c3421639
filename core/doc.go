// Package core holds the HTTP error values and the JSON envelope shared by
// the service's handlers.
package core
