package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/events"
	"github.com/phrazzld/minisocial/internal/notify"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/phrazzld/minisocial/internal/store"
)

// Messages logged for rejected sign-ups.
const (
	msgUserExists      = "User with the same name already exists."
	msgInvalidPassword = "Password must be between 4 and 8 characters."
)

// Deps holds the collaborators of a SocialNetwork.
type Deps struct {
	Users         store.UserStore
	Follows       store.FollowStore
	Notifications store.NotificationStore

	// Hasher and Verifier are usually the same auth.BcryptVerifier.
	Hasher   auth.PasswordHasher
	Verifier auth.PasswordVerifier

	// Events receives like, comment and new post events. When nil, the
	// network creates an events.Dispatcher feeding Notifications.
	Events events.EventEmitter

	Renderer render.ImageRenderer
	Logger   *slog.Logger
}

// SocialNetwork is the registry of users. Names are unique and users are
// never removed.
type SocialNetwork struct {
	name     string
	users    store.UserStore
	follows  store.FollowStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger

	accounts *UserServiceImpl
	posts    *PostServiceImpl
}

// NewSocialNetwork creates an empty network called name.
func NewSocialNetwork(name string, deps Deps) (*SocialNetwork, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyNetworkName
	}
	if deps.Users == nil || deps.Follows == nil || deps.Notifications == nil {
		return nil, errors.New("social network requires user, follow and notification stores")
	}
	if deps.Hasher == nil || deps.Verifier == nil {
		return nil, errors.New("social network requires a password hasher and verifier")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	emitter := deps.Events
	if emitter == nil {
		emitter = events.NewDispatcher(logger, notify.NewEventHandler(deps.Notifications, logger))
	}

	factory := NewPostFactory()
	n := &SocialNetwork{
		name:     name,
		users:    deps.Users,
		follows:  deps.Follows,
		hasher:   deps.Hasher,
		verifier: deps.Verifier,
		logger:   logger.With("component", "social_network", "network", name),
		accounts: newUserService(deps.Users, deps.Follows, deps.Notifications, emitter, factory, logger),
		posts:    newPostService(deps.Users, deps.Verifier, emitter, deps.Renderer, logger),
	}

	n.logger.Info(fmt.Sprintf("The social network %s was created!", name))
	return n, nil
}

// Name returns the network's name.
func (n *SocialNetwork) Name() string {
	return n.name
}

// Accounts returns the user operations bound to this network.
func (n *SocialNetwork) Accounts() UserService {
	return n.accounts
}

// Posts returns the post operations bound to this network.
func (n *SocialNetwork) Posts() PostService {
	return n.posts
}

// SignUp registers a new online user. It fails with store.ErrUserExists when
// the name is taken, which is checked first, or domain.ErrInvalidPassword when
// the password is not 4 to 8 characters long. A failed sign-up leaves the
// registry unchanged.
func (n *SocialNetwork) SignUp(ctx context.Context, name, password string) (*domain.User, error) {
	if _, err := n.users.GetByName(ctx, name); err == nil {
		n.logger.Info(msgUserExists, "name", name)
		return nil, fmt.Errorf("failed to sign up %q: %w", name, store.ErrUserExists)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		n.logger.Error("failed to look up user name", "error", err, "name", name)
		return nil, fmt.Errorf("failed to sign up %q: %w", name, err)
	}

	if !domain.ValidPasswordLength(password) {
		n.logger.Info(msgInvalidPassword, "name", name)
		return nil, fmt.Errorf("failed to sign up %q: %w", name, domain.ErrInvalidPassword)
	}

	user, err := domain.NewUser(name, password)
	if err != nil {
		n.logger.Debug("rejected sign-up", "error", err, "name", name)
		return nil, fmt.Errorf("failed to sign up %q: %w", name, err)
	}

	hashed, err := n.hasher.Hash(password)
	if err != nil {
		n.logger.Error("failed to hash password", "error", err, "name", name)
		return nil, fmt.Errorf("failed to sign up %q: %w", name, err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := n.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			n.logger.Info(msgUserExists, "name", name)
		} else {
			n.logger.Error("failed to save user", "error", err, "name", name)
		}
		return nil, fmt.Errorf("failed to sign up %q: %w", name, err)
	}

	n.logger.Debug("user signed up", "user_id", user.ID, "name", name)
	return user, nil
}

// LogIn sets the user matching name and password online. When no user
// matches, the call does nothing. Logging in an online user returns
// domain.ErrAlreadyLoggedIn.
func (n *SocialNetwork) LogIn(ctx context.Context, name, password string) error {
	user, err := n.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			n.logger.Debug("log-in for unknown user ignored", "name", name)
			return nil
		}
		return fmt.Errorf("failed to log in %q: %w", name, err)
	}

	if err := n.verifier.Compare(user.HashedPassword, password); err != nil {
		n.logger.Debug("log-in with wrong password ignored", "name", name)
		return nil
	}

	if user.Online {
		return fmt.Errorf("failed to log in %q: %w", name, domain.ErrAlreadyLoggedIn)
	}

	user.SetOnline(true)
	if err := n.users.Update(ctx, user); err != nil {
		n.logger.Error("failed to update user", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to log in %q: %w", name, err)
	}

	n.logger.Info(fmt.Sprintf("%s connected", name), "user_id", user.ID)
	return nil
}

// Authenticate returns the user matching name and password, or
// domain.ErrWrongPassword when there is none. Unlike LogIn it reports the
// failure, which the HTTP API needs before issuing a session token.
func (n *SocialNetwork) Authenticate(ctx context.Context, name, password string) (*domain.User, error) {
	user, err := n.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.ErrWrongPassword
		}
		return nil, fmt.Errorf("failed to authenticate %q: %w", name, err)
	}
	if decision := auth.AuthorizeOwner(n.verifier, user, password); !decision.Allowed() {
		return nil, decision.Err()
	}
	return user, nil
}

// LogOut sets the named user offline. An unknown name does nothing; an
// offline user yields domain.ErrAlreadyLoggedOut.
func (n *SocialNetwork) LogOut(ctx context.Context, name string) error {
	user, err := n.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			n.logger.Debug("log-out for unknown user ignored", "name", name)
			return nil
		}
		return fmt.Errorf("failed to log out %q: %w", name, err)
	}

	if !user.Online {
		return fmt.Errorf("failed to log out %q: %w", name, domain.ErrAlreadyLoggedOut)
	}

	user.SetOnline(false)
	if err := n.users.Update(ctx, user); err != nil {
		n.logger.Error("failed to update user", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to log out %q: %w", name, err)
	}

	n.logger.Info(fmt.Sprintf("%s disconnected", name), "user_id", user.ID)
	return nil
}

// Users returns every user in sign-up order.
func (n *SocialNetwork) Users(ctx context.Context) ([]*domain.User, error) {
	users, err := n.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Summary renders the network's name followed by one line per user.
func (n *SocialNetwork) Summary(ctx context.Context) (string, error) {
	users, err := n.Users(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s social network:\n", n.name)
	for _, u := range users {
		line, err := n.accounts.describe(ctx, u)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
