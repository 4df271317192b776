package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
)

// NotificationStore holds each user's notification list. Lists only grow.
type NotificationStore interface {
	// Append adds a notification to the end of its recipient's list.
	// Returns ErrInvalidEntity wrapping the domain error if data is invalid.
	Append(ctx context.Context, notification *domain.Notification) error

	// ListForUser returns the user's notifications, oldest first.
	// A user without notifications yields an empty slice.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
}
