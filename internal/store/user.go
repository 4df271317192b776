package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
)

// UserStore defines the interface for the user registry.
// Users are never deleted; List returns them in sign-up order.
type UserStore interface {
	// Create adds a new user to the store.
	// The user must already carry a HashedPassword.
	// Returns ErrUserExists if the name is already taken.
	// Returns ErrInvalidEntity wrapping the domain error if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByName retrieves a user by their unique name.
	// Returns ErrUserNotFound if the user does not exist.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// List returns every user in the order they signed up.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces the stored mutable state (online flag, post count) of an
	// existing user. Name and password are immutable.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error
}
