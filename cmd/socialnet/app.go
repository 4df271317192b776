package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/minisocial/internal/platform/memory"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/service/auth"
)

// newNetwork wires a social network over fresh in-memory stores. Passwords
// are hashed with bcrypt at the given cost and pictures are drawn as ASCII
// art width columns wide.
func newNetwork(name string, bcryptCost, width int, logger *slog.Logger) (*service.SocialNetwork, error) {
	verifier := auth.NewBcryptVerifier(bcryptCost)

	network, err := service.NewSocialNetwork(name, service.Deps{
		Users:         memory.NewMemoryUserStore(logger),
		Follows:       memory.NewMemoryFollowStore(logger),
		Notifications: memory.NewMemoryNotificationStore(logger),
		Hasher:        verifier,
		Verifier:      verifier,
		Renderer:      render.NewASCIIRenderer(width, logger),
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create social network: %w", err)
	}
	return network, nil
}
