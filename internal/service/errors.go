package service

import "errors"

// Service errors returned for expected conditions that are not domain rule
// violations. Callers check them with errors.Is; the API layer maps them to
// HTTP status codes.
var (
	// ErrEmptyNetworkName is returned when a network is created without a name.
	ErrEmptyNetworkName = errors.New("social network name cannot be empty")

	// ErrNotSalePost is returned when a sale operation targets another kind of post.
	ErrNotSalePost = errors.New("post is not a sale listing")

	// ErrNotImagePost is returned when Display targets a post that has no image.
	ErrNotImagePost = errors.New("post is not an image post")

	// ErrNilUser is returned when an operation receives no user handle.
	ErrNilUser = errors.New("user cannot be nil")

	// ErrNilPost is returned when an operation receives no post.
	ErrNilPost = errors.New("post cannot be nil")
)
