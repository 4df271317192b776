// Package middleware provides the HTTP middleware used by the api router:
// bearer token authentication, per-request tracing and request serialization.
package middleware
