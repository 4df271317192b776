package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/events"
	"github.com/phrazzld/minisocial/internal/mocks"
	"github.com/phrazzld/minisocial/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventHandler_HandleEvent(t *testing.T) {
	recipient := uuid.New()

	tests := []struct {
		name      string
		eventType string
		message   string
		wantType  domain.NotificationType
	}{
		{"like", events.TypePostLiked, domain.LikeMessage("alice"), domain.NotificationTypeLike},
		{"comment", events.TypePostCommented, domain.CommentMessage("alice", "nice"), domain.NotificationTypeComment},
		{"new post", events.TypePostPublished, domain.NewPostMessage("alice"), domain.NotificationTypeNewPost},
		{"direct message", events.TypeUserMessage, "hello", domain.NotificationTypeMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := &mocks.MockNotificationStore{}
			handler := NewEventHandler(notifications, discardLogger())

			event, err := NewEvent(tt.eventType, recipient, "alice", tt.message)
			require.NoError(t, err)

			require.NoError(t, handler.HandleEvent(context.Background(), event))

			require.Len(t, notifications.Appended, 1)
			got := notifications.Appended[0]
			assert.Equal(t, recipient, got.RecipientID)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, "alice", got.ActorName)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestEventHandler_IgnoresUnknownTypes(t *testing.T) {
	notifications := &mocks.MockNotificationStore{}
	handler := NewEventHandler(notifications, discardLogger())

	event, err := events.NewEvent("something_else", map[string]string{"k": "v"})
	require.NoError(t, err)

	assert.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Empty(t, notifications.Appended)
}

func TestEventHandler_Errors(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		notifications := &mocks.MockNotificationStore{}
		handler := NewEventHandler(notifications, discardLogger())

		event := &events.Event{
			ID:      uuid.New(),
			Type:    events.TypePostLiked,
			Payload: json.RawMessage(`{"recipient_id": 42}`),
		}

		err := handler.HandleEvent(context.Background(), event)
		assert.ErrorContains(t, err, "failed to unmarshal payload")
		assert.Empty(t, notifications.Appended)
	})

	t.Run("missing recipient", func(t *testing.T) {
		notifications := &mocks.MockNotificationStore{}
		handler := NewEventHandler(notifications, discardLogger())

		event, err := NewEvent(events.TypePostLiked, uuid.Nil, "alice", "alice liked your post")
		require.NoError(t, err)

		err = handler.HandleEvent(context.Background(), event)
		assert.ErrorIs(t, err, domain.ErrEmptyNotificationRecipient)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("boom")
		notifications := &mocks.MockNotificationStore{
			AppendFn: func(context.Context, *domain.Notification) error {
				return storeErr
			},
		}
		handler := NewEventHandler(notifications, discardLogger())

		event, err := NewEvent(events.TypePostLiked, uuid.New(), "alice", "alice liked your post")
		require.NoError(t, err)

		err = handler.HandleEvent(context.Background(), event)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("invalid entity from store", func(t *testing.T) {
		notifications := &mocks.MockNotificationStore{
			AppendFn: func(context.Context, *domain.Notification) error {
				return store.ErrInvalidEntity
			},
		}
		handler := NewEventHandler(notifications, discardLogger())

		event, err := NewEvent(events.TypeUserMessage, uuid.New(), "", "hi")
		require.NoError(t, err)

		assert.ErrorIs(t, handler.HandleEvent(context.Background(), event), store.ErrInvalidEntity)
	})
}
