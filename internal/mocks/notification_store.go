package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/store"
)

// MockNotificationStore implements store.NotificationStore for testing.
// Without function fields it records appended notifications in memory.
type MockNotificationStore struct {
	AppendFn      func(ctx context.Context, notification *domain.Notification) error
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// Appended holds every notification passed to Append, in call order
	Appended []*domain.Notification
}

var _ store.NotificationStore = (*MockNotificationStore)(nil)

// Append implements the store.NotificationStore interface
func (m *MockNotificationStore) Append(ctx context.Context, notification *domain.Notification) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, notification)
	}
	m.Appended = append(m.Appended, notification)
	return nil
}

// ListForUser implements the store.NotificationStore interface
func (m *MockNotificationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}
	out := make([]*domain.Notification, 0)
	for _, n := range m.Appended {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
