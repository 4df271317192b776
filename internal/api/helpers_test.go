package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/api/shared"
	"github.com/phrazzld/minisocial/internal/config"
	"github.com/phrazzld/minisocial/internal/mocks"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/platform/memory"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "api-test-secret-that-is-long-enough"

// testAPI is a router over a fresh network and in-memory stores.
type testAPI struct {
	t        *testing.T
	handler  http.Handler
	network  *service.SocialNetwork
	renderer *mocks.MockImageRenderer
	logs     *logger.TestLogBuffer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	verifier := auth.NewBcryptVerifier(bcrypt.MinCost)
	renderer := &mocks.MockImageRenderer{}

	network, err := service.NewSocialNetwork("Twitter", service.Deps{
		Users:         memory.NewMemoryUserStore(log),
		Follows:       memory.NewMemoryFollowStore(log),
		Notifications: memory.NewMemoryNotificationStore(log),
		Hasher:        verifier,
		Verifier:      verifier,
		Renderer:      renderer,
		Logger:        log,
	})
	require.NoError(t, err)

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           bcrypt.MinCost,
	})
	require.NoError(t, err)

	return &testAPI{
		t: t,
		handler: NewRouter(RouterDeps{
			Network:    network,
			Posts:      memory.NewMemoryPostStore(log),
			JWTService: jwtSvc,
			Logger:     log,
		}),
		network:  network,
		renderer: renderer,
		logs:     buf,
	}
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// signUpAndLogIn registers name and returns a session token for it.
func (a *testAPI) signUpAndLogIn(name, password string) (uuid.UUID, string) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/users", "", CredentialsRequest{Name: name, Password: password})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/sessions", "", CredentialsRequest{Name: name, Password: password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var session SessionResponse
	decodeBody(a.t, rec, &session)
	return session.UserID, session.AccessToken
}

func (a *testAPI) publish(token string, req CreatePostRequest) PostResponse {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/posts", token, req)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var post PostResponse
	decodeBody(a.t, rec, &post)
	return post
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	decodeBody(t, rec, &body)
	return body.Error
}
