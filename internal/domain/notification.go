package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what triggered a notification.
type NotificationType string

// Possible notification types
const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeNewPost NotificationType = "new_post"
	NotificationTypeMessage NotificationType = "message"
)

// Common validation errors for Notification
var (
	ErrEmptyNotificationID        = errors.New("notification ID cannot be empty")
	ErrEmptyNotificationRecipient = errors.New("notification recipient cannot be empty")
	ErrInvalidNotificationType    = errors.New("invalid notification type")
)

// Notification is a message waiting in a user's notification list.
// Notifications are never evicted or marked as read.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	ActorName   string           `json:"actor_name"`
	Message     string           `json:"message"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewNotification creates a notification for recipientID.
// Returns an error if validation fails.
func NewNotification(
	recipientID uuid.UUID,
	notificationType NotificationType,
	actorName, message string,
) (*Notification, error) {
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        notificationType,
		ActorName:   actorName,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}
	if n.RecipientID == uuid.Nil {
		return ErrEmptyNotificationRecipient
	}
	switch n.Type {
	case NotificationTypeLike, NotificationTypeComment, NotificationTypeNewPost, NotificationTypeMessage:
		return nil
	default:
		return ErrInvalidNotificationType
	}
}

// LikeMessage is the notification text sent to an author whose post was liked.
func LikeMessage(actor string) string {
	return fmt.Sprintf("%s liked your post", actor)
}

// CommentMessage is the notification text sent to an author whose post got a comment.
func CommentMessage(actor, text string) string {
	return fmt.Sprintf("%s commented on your post: %s", actor, text)
}

// NewPostMessage is the notification text sent to every follower of author.
func NewPostMessage(author string) string {
	return fmt.Sprintf("%s has a new post", author)
}
