package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/events"
	"github.com/phrazzld/minisocial/internal/notify"
	"github.com/phrazzld/minisocial/internal/store"
)

// UserService provides the operations a user performs on their own account
// and on the follow graph.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByName retrieves a user by their name
	GetUserByName(ctx context.Context, name string) (*domain.User, error)

	// Follow makes follower a follower of followee.
	Follow(ctx context.Context, follower, followee *domain.User) error

	// Unfollow removes follower from followee's followers.
	Unfollow(ctx context.Context, follower, followee *domain.User) error

	// Followers returns user's followers in the order they followed.
	Followers(ctx context.Context, user *domain.User) ([]*domain.User, error)

	// PublishPost creates a post by author and notifies author's followers.
	PublishPost(ctx context.Context, author *domain.User, content domain.PostContent) (*domain.Post, error)

	// UpdateFollowers sends msg to every follower of author.
	UpdateFollowers(ctx context.Context, author *domain.User, msg string) error

	// SelfUpdate sends msg to user.
	SelfUpdate(ctx context.Context, user *domain.User, msg string) error

	// Notifications returns user's notifications, oldest first.
	Notifications(ctx context.Context, user *domain.User) ([]*domain.Notification, error)

	// PrintNotifications writes user's notifications to w. Notifications are
	// never cleared.
	PrintNotifications(ctx context.Context, user *domain.User, w io.Writer) error

	// Describe renders the user's name, post count and follower count.
	Describe(ctx context.Context, user *domain.User) (string, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users         store.UserStore
	follows       store.FollowStore
	notifications store.NotificationStore
	events        events.EventEmitter
	factory       *PostFactory
	logger        *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

func newUserService(
	users store.UserStore,
	follows store.FollowStore,
	notifications store.NotificationStore,
	emitter events.EventEmitter,
	factory *PostFactory,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:         users,
		follows:       follows,
		notifications: notifications,
		events:        emitter,
		factory:       factory,
		logger:        logger.With("component", "user_service"),
	}
}

// current re-reads the stored state of the user behind handle.
func (s *UserServiceImpl) current(ctx context.Context, handle *domain.User) (*domain.User, error) {
	if handle == nil {
		return nil, ErrNilUser
	}
	user, err := s.users.GetByID(ctx, handle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user %q: %w", handle.Name, err)
	}
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByName retrieves a user by their name
func (s *UserServiceImpl) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user by name", "error", err, "name", name)
		}
		return nil, fmt.Errorf("failed to retrieve user by name: %w", err)
	}
	return user, nil
}

// Follow appends follower to the end of followee's follower list. The
// follower must be online, must not be followee and must not already follow.
func (s *UserServiceImpl) Follow(ctx context.Context, follower, followee *domain.User) error {
	from, err := s.current(ctx, follower)
	if err != nil {
		return err
	}
	to, err := s.current(ctx, followee)
	if err != nil {
		return err
	}

	if !from.Online {
		return domain.ErrUserOffline
	}
	if from.ID == to.ID {
		return domain.ErrSelfFollow
	}
	following, err := s.follows.IsFollower(ctx, to.ID, from.ID)
	if err != nil {
		return fmt.Errorf("failed to check follower: %w", err)
	}
	if following {
		return domain.ErrAlreadyFollowing
	}

	if err := s.follows.AddFollower(ctx, to.ID, from.ID); err != nil {
		if errors.Is(err, store.ErrFollowerExists) {
			return domain.ErrAlreadyFollowing
		}
		s.logger.Error("failed to add follower",
			"error", err,
			"follower_id", from.ID,
			"followee_id", to.ID)
		return fmt.Errorf("failed to follow %q: %w", to.Name, err)
	}

	s.logger.Info(fmt.Sprintf("%s started following %s", from.Name, to.Name),
		"follower_id", from.ID,
		"followee_id", to.ID)
	return nil
}

// Unfollow removes follower from followee's follower list, keeping the
// order of the remaining followers.
func (s *UserServiceImpl) Unfollow(ctx context.Context, follower, followee *domain.User) error {
	from, err := s.current(ctx, follower)
	if err != nil {
		return err
	}
	to, err := s.current(ctx, followee)
	if err != nil {
		return err
	}

	if !from.Online {
		return domain.ErrUserOffline
	}
	following, err := s.follows.IsFollower(ctx, to.ID, from.ID)
	if err != nil {
		return fmt.Errorf("failed to check follower: %w", err)
	}
	if !following {
		return domain.ErrNotFollowing
	}

	if err := s.follows.RemoveFollower(ctx, to.ID, from.ID); err != nil {
		if errors.Is(err, store.ErrFollowerNotFound) {
			return domain.ErrNotFollowing
		}
		s.logger.Error("failed to remove follower",
			"error", err,
			"follower_id", from.ID,
			"followee_id", to.ID)
		return fmt.Errorf("failed to unfollow %q: %w", to.Name, err)
	}

	s.logger.Info(fmt.Sprintf("%s unfollowed %s", from.Name, to.Name),
		"follower_id", from.ID,
		"followee_id", to.ID)
	return nil
}

// Followers returns user's followers in the order they followed.
func (s *UserServiceImpl) Followers(ctx context.Context, user *domain.User) ([]*domain.User, error) {
	if user == nil {
		return nil, ErrNilUser
	}
	ids, err := s.follows.Followers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	followers := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		f, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve follower %s: %w", id, err)
		}
		followers = append(followers, f)
	}
	return followers, nil
}

// PublishPost creates a post through the PostFactory, persists the
// author's incremented post count and then sends "<name> has a new post" to
// every follower. Followers hear nothing unless the count was stored. An
// offline author gets domain.ErrUserOffline and nothing changes.
func (s *UserServiceImpl) PublishPost(
	ctx context.Context,
	author *domain.User,
	content domain.PostContent,
) (*domain.Post, error) {
	user, err := s.current(ctx, author)
	if err != nil {
		return nil, err
	}
	if !user.Online {
		return nil, domain.ErrUserOffline
	}

	post, err := s.factory.Create(user, content)
	if err != nil {
		s.logger.Debug("rejected post", "error", err, "author_id", user.ID)
		return nil, err
	}

	user.IncrementPostCount()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to update post count", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}

	if err := s.notifyFollowers(ctx, user, events.TypePostPublished, domain.NewPostMessage(user.Name)); err != nil {
		user.PostCount--
		if restoreErr := s.users.Update(ctx, user); restoreErr != nil {
			s.logger.Error("failed to restore post count", "error", restoreErr, "user_id", user.ID)
		}
		return nil, err
	}
	author.PostCount = user.PostCount
	author.Online = user.Online

	s.logger.Info(post.Describe(),
		"post_id", post.ID,
		"kind", post.Kind,
		"author_id", user.ID)
	return post, nil
}

// UpdateFollowers sends msg to every follower of author.
func (s *UserServiceImpl) UpdateFollowers(ctx context.Context, author *domain.User, msg string) error {
	user, err := s.current(ctx, author)
	if err != nil {
		return err
	}
	return s.notifyFollowers(ctx, user, events.TypeUserMessage, msg)
}

func (s *UserServiceImpl) notifyFollowers(ctx context.Context, author *domain.User, eventType, msg string) error {
	followers, err := s.follows.Followers(ctx, author.ID)
	if err != nil {
		return fmt.Errorf("failed to list followers: %w", err)
	}
	for _, id := range followers {
		if err := s.emit(ctx, eventType, id, author.Name, msg); err != nil {
			return err
		}
	}
	return nil
}

// SelfUpdate sends msg to user.
func (s *UserServiceImpl) SelfUpdate(ctx context.Context, user *domain.User, msg string) error {
	u, err := s.current(ctx, user)
	if err != nil {
		return err
	}
	return s.emit(ctx, events.TypeUserMessage, u.ID, u.Name, msg)
}

func (s *UserServiceImpl) emit(ctx context.Context, eventType string, recipient uuid.UUID, actor, msg string) error {
	event, err := notify.NewEvent(eventType, recipient, actor, msg)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}

// Notifications returns user's notifications, oldest first.
func (s *UserServiceImpl) Notifications(ctx context.Context, user *domain.User) ([]*domain.Notification, error) {
	if user == nil {
		return nil, ErrNilUser
	}
	list, err := s.notifications.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// PrintNotifications writes "<name>'s notifications:" and one line per
// notification, or "No notifications for <name>" when there are none.
func (s *UserServiceImpl) PrintNotifications(ctx context.Context, user *domain.User, w io.Writer) error {
	list, err := s.Notifications(ctx, user)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		_, err = fmt.Fprintf(w, "No notifications for %s\n", user.Name)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s's notifications:\n", user.Name); err != nil {
		return err
	}
	for _, n := range list {
		if _, err := fmt.Fprintln(w, n.Message); err != nil {
			return err
		}
	}
	return nil
}

// Describe renders "User name: <n>, Number of posts: <p>, Number of followers: <f>".
func (s *UserServiceImpl) Describe(ctx context.Context, user *domain.User) (string, error) {
	u, err := s.current(ctx, user)
	if err != nil {
		return "", err
	}
	return s.describe(ctx, u)
}

func (s *UserServiceImpl) describe(ctx context.Context, user *domain.User) (string, error) {
	followers, err := s.follows.Followers(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to count followers: %w", err)
	}
	return user.Describe(len(followers)), nil
}
