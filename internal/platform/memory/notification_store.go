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

// MemoryNotificationStore implements the store.NotificationStore interface.
type MemoryNotificationStore struct {
	mu     sync.RWMutex
	lists  map[uuid.UUID][]domain.Notification
	logger *slog.Logger
}

// Ensure MemoryNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*MemoryNotificationStore)(nil)

// NewMemoryNotificationStore creates an empty notification store.
func NewMemoryNotificationStore(logger *slog.Logger) *MemoryNotificationStore {
	return &MemoryNotificationStore{
		lists:  make(map[uuid.UUID][]domain.Notification),
		logger: logger.With("component", "memory_notification_store"),
	}
}

// Append implements store.NotificationStore.Append
func (s *MemoryNotificationStore) Append(ctx context.Context, notification *domain.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[notification.RecipientID] = append(s.lists[notification.RecipientID], *notification)

	s.logger.Debug("notification appended",
		"recipient_id", notification.RecipientID,
		"type", notification.Type,
		"pending", len(s.lists[notification.RecipientID]))
	return nil
}

// ListForUser implements store.NotificationStore.ListForUser
func (s *MemoryNotificationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[userID]
	out := make([]*domain.Notification, 0, len(list))
	for i := range list {
		n := list[i]
		out = append(out, &n)
	}
	return out, nil
}
