// Package store defines the interfaces through which services reach the
// user registry, follower relationships, notification lists and posts,
// together with the errors every implementation reports. Implementations
// live under internal/platform.
package store
