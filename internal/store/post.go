package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
)

// PostStore lets outer surfaces (the HTTP API) address posts by ID. The
// social network itself never reads from it.
type PostStore interface {
	// Create saves a new post.
	// Returns ErrInvalidEntity wrapping the domain error if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// Update replaces the stored content of an existing post. Only a sale
	// listing's price and status ever change.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error
}
