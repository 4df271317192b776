package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/events"
	"github.com/phrazzld/minisocial/internal/store"
)

// Payload is the body of every event that ends up in a notification list.
type Payload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	ActorName   string    `json:"actor_name"`
	Message     string    `json:"message"`
}

// NewEvent builds an event of eventType addressed to recipientID.
func NewEvent(eventType string, recipientID uuid.UUID, actorName, message string) (*events.Event, error) {
	return events.NewEvent(eventType, Payload{
		RecipientID: recipientID,
		ActorName:   actorName,
		Message:     message,
	})
}

// notificationTypes maps the event types this handler consumes to the
// notification type recorded for them.
var notificationTypes = map[string]domain.NotificationType{
	events.TypePostLiked:     domain.NotificationTypeLike,
	events.TypePostCommented: domain.NotificationTypeComment,
	events.TypePostPublished: domain.NotificationTypeNewPost,
	events.TypeUserMessage:   domain.NotificationTypeMessage,
}

// EventHandler implements events.EventHandler by appending a notification
// to the recipient's list for every event it understands.
type EventHandler struct {
	notifications store.NotificationStore
	logger        *slog.Logger
}

// Ensure EventHandler implements events.EventHandler
var _ events.EventHandler = (*EventHandler)(nil)

// NewEventHandler creates a handler that records notifications in notifications.
func NewEventHandler(notifications store.NotificationStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		notifications: notifications,
		logger:        logger.With("component", "notification_event_handler"),
	}
}

// HandleEvent turns the event into a domain.Notification and appends it.
// Events of unknown types are ignored.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	notificationType, ok := notificationTypes[event.Type]
	if !ok {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload Payload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	notification, err := domain.NewNotification(
		payload.RecipientID,
		notificationType,
		payload.ActorName,
		payload.Message,
	)
	if err != nil {
		h.logger.Error("invalid notification",
			"error", err,
			"recipient_id", payload.RecipientID,
			"event_id", event.ID)
		return fmt.Errorf("failed to build notification: %w", err)
	}

	if err := h.notifications.Append(ctx, notification); err != nil {
		h.logger.Error("failed to append notification",
			"error", err,
			"recipient_id", payload.RecipientID,
			"event_id", event.ID)
		return fmt.Errorf("failed to append notification: %w", err)
	}

	h.logger.Debug("notification recorded",
		"notification_id", notification.ID,
		"recipient_id", notification.RecipientID,
		"type", notification.Type,
		"event_id", event.ID)
	return nil
}
