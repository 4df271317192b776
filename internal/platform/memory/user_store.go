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

// MemoryUserStore implements the store.UserStore interface using in-process
// maps. Users are copied on the way in and out, so callers must call Update
// to persist changes.
type MemoryUserStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*domain.User
	byName map[string]uuid.UUID
	order  []uuid.UUID
	logger *slog.Logger
}

// Ensure MemoryUserStore implements store.UserStore interface
var _ store.UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty user registry.
func NewMemoryUserStore(logger *slog.Logger) *MemoryUserStore {
	return &MemoryUserStore{
		byID:   make(map[uuid.UUID]*domain.User),
		byName: make(map[string]uuid.UUID),
		logger: logger.With("component", "memory_user_store"),
	}
}

// Create implements store.UserStore.Create
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}

	// The plaintext password never reaches the store.
	stored := *user
	stored.Password = ""
	if err := stored.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Name]; exists {
		s.logger.Debug("user name already taken", "name", user.Name)
		return store.ErrUserExists
	}
	if _, exists := s.byID[user.ID]; exists {
		return store.NewStoreError("user", "create", "duplicate user ID", store.ErrDuplicate)
	}

	s.byID[stored.ID] = &stored
	s.byName[stored.Name] = stored.ID
	s.order = append(s.order, stored.ID)

	s.logger.Debug("user created", "user_id", stored.ID, "name", stored.Name)
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// GetByName implements store.UserStore.GetByName
func (s *MemoryUserStore) GetByName(ctx context.Context, name string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

// List implements store.UserStore.List
func (s *MemoryUserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.byID[id]
		users = append(users, &cp)
	}
	return users, nil
}

// Update implements store.UserStore.Update
func (s *MemoryUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if user.PostCount < 0 {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity,
			domain.NewValidationError("post_count", "cannot be negative", nil))
	}

	existing.Online = user.Online
	existing.PostCount = user.PostCount
	existing.UpdatedAt = user.UpdatedAt
	return nil
}
