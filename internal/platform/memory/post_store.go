package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/store"
)

// MemoryPostStore implements the store.PostStore interface. Posts are deep
// copied on every read and write.
type MemoryPostStore struct {
	mu     sync.RWMutex
	posts  map[uuid.UUID]*domain.Post
	logger *slog.Logger
}

// Ensure MemoryPostStore implements store.PostStore interface
var _ store.PostStore = (*MemoryPostStore)(nil)

// NewMemoryPostStore creates an empty post store.
func NewMemoryPostStore(logger *slog.Logger) *MemoryPostStore {
	return &MemoryPostStore{
		posts:  make(map[uuid.UUID]*domain.Post),
		logger: logger.With("component", "memory_post_store"),
	}
}

// Create implements store.PostStore.Create
func (s *MemoryPostStore) Create(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return store.NewStoreError("post", "create", "duplicate post ID", store.ErrDuplicate)
	}
	s.posts[post.ID] = post.Clone()

	s.logger.Debug("post stored", "post_id", post.ID, "kind", post.Kind)
	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *MemoryPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	return post.Clone(), nil
}

// Update implements store.PostStore.Update
func (s *MemoryPostStore) Update(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return store.ErrPostNotFound
	}
	s.posts[post.ID] = post.Clone()
	return nil
}
