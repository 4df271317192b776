package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/mocks"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/platform/memory"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testNetwork bundles a network over fresh in-memory stores with the buffer
// its logs go to.
type testNetwork struct {
	*service.SocialNetwork
	logs     *logger.TestLogBuffer
	renderer *mocks.MockImageRenderer
}

func newTestNetwork(t *testing.T, name string) *testNetwork {
	t.Helper()
	return newTestNetworkWithDeps(t, name, nil)
}

// newTestNetworkWithDeps lets tests replace collaborators before the network
// is built.
func newTestNetworkWithDeps(t *testing.T, name string, adjust func(*service.Deps)) *testNetwork {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	verifier := auth.NewBcryptVerifier(bcrypt.MinCost)
	renderer := &mocks.MockImageRenderer{}

	deps := service.Deps{
		Users:         memory.NewMemoryUserStore(log),
		Follows:       memory.NewMemoryFollowStore(log),
		Notifications: memory.NewMemoryNotificationStore(log),
		Hasher:        verifier,
		Verifier:      verifier,
		Renderer:      renderer,
		Logger:        log,
	}
	if adjust != nil {
		adjust(&deps)
	}

	network, err := service.NewSocialNetwork(name, deps)
	require.NoError(t, err)
	return &testNetwork{SocialNetwork: network, logs: buf, renderer: renderer}
}

func (n *testNetwork) mustSignUp(t *testing.T, name, password string) *domain.User {
	t.Helper()
	user, err := n.SignUp(context.Background(), name, password)
	require.NoError(t, err)
	return user
}

func (n *testNetwork) mustPublish(t *testing.T, author *domain.User, content domain.PostContent) *domain.Post {
	t.Helper()
	post, err := n.Accounts().PublishPost(context.Background(), author, content)
	require.NoError(t, err)
	return post
}

func (n *testNetwork) messagesFor(t *testing.T, user *domain.User) []string {
	t.Helper()
	list, err := n.Accounts().Notifications(context.Background(), user)
	require.NoError(t, err)
	msgs := make([]string, 0, len(list))
	for _, notification := range list {
		msgs = append(msgs, notification.Message)
	}
	return msgs
}
