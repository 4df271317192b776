// Package shared holds the request, response and context helpers used by
// both the api handlers and the api middleware.
package shared
