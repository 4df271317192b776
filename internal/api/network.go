package api

import (
	"context"

	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/service"
)

// Network is the part of service.SocialNetwork the handlers use.
type Network interface {
	Name() string
	SignUp(ctx context.Context, name, password string) (*domain.User, error)
	LogIn(ctx context.Context, name, password string) error
	Authenticate(ctx context.Context, name, password string) (*domain.User, error)
	LogOut(ctx context.Context, name string) error
	Users(ctx context.Context) ([]*domain.User, error)
	Summary(ctx context.Context) (string, error)
	Accounts() service.UserService
	Posts() service.PostService
}

var _ Network = (*service.SocialNetwork)(nil)
