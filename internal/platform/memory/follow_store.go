package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/store"
)

// MemoryFollowStore implements the store.FollowStore interface with one
// ordered follower slice per followed user.
type MemoryFollowStore struct {
	mu        sync.RWMutex
	followers map[uuid.UUID][]uuid.UUID
	logger    *slog.Logger
}

// Ensure MemoryFollowStore implements store.FollowStore interface
var _ store.FollowStore = (*MemoryFollowStore)(nil)

// NewMemoryFollowStore creates an empty relationship store.
func NewMemoryFollowStore(logger *slog.Logger) *MemoryFollowStore {
	return &MemoryFollowStore{
		followers: make(map[uuid.UUID][]uuid.UUID),
		logger:    logger.With("component", "memory_follow_store"),
	}
}

// AddFollower implements store.FollowStore.AddFollower
func (s *MemoryFollowStore) AddFollower(ctx context.Context, followeeID, followerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.followers[followeeID], followerID) {
		return store.ErrFollowerExists
	}
	s.followers[followeeID] = append(s.followers[followeeID], followerID)

	s.logger.Debug("follower added",
		"followee_id", followeeID,
		"follower_id", followerID,
		"follower_count", len(s.followers[followeeID]))
	return nil
}

// RemoveFollower implements store.FollowStore.RemoveFollower
func (s *MemoryFollowStore) RemoveFollower(ctx context.Context, followeeID, followerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.followers[followeeID]
	idx := slices.Index(list, followerID)
	if idx < 0 {
		return store.ErrFollowerNotFound
	}
	s.followers[followeeID] = slices.Delete(list, idx, idx+1)

	s.logger.Debug("follower removed",
		"followee_id", followeeID,
		"follower_id", followerID,
		"follower_count", len(s.followers[followeeID]))
	return nil
}

// IsFollower implements store.FollowStore.IsFollower
func (s *MemoryFollowStore) IsFollower(ctx context.Context, followeeID, followerID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.followers[followeeID], followerID), nil
}

// Followers implements store.FollowStore.Followers
func (s *MemoryFollowStore) Followers(ctx context.Context, followeeID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.followers[followeeID]), nil
}
