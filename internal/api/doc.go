// Package api serves the social network over HTTP. It decodes and validates
// requests, calls the network's services and maps their errors to status
// codes and sanitized messages.
package api
