package store

import (
	"context"

	"github.com/google/uuid"
)

// FollowStore manages follower relationships between users. It is the only
// way one user's follower list is changed on behalf of another user.
type FollowStore interface {
	// AddFollower appends followerID to the end of followeeID's follower list.
	// Returns ErrFollowerExists if the relationship already exists.
	AddFollower(ctx context.Context, followeeID, followerID uuid.UUID) error

	// RemoveFollower removes followerID from followeeID's follower list,
	// preserving the order of the remaining followers.
	// Returns ErrFollowerNotFound if the relationship does not exist.
	RemoveFollower(ctx context.Context, followeeID, followerID uuid.UUID) error

	// IsFollower reports whether followerID follows followeeID.
	IsFollower(ctx context.Context, followeeID, followerID uuid.UUID) (bool, error)

	// Followers returns followeeID's followers in the order they followed.
	Followers(ctx context.Context, followeeID uuid.UUID) ([]uuid.UUID, error)
}
