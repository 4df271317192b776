package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetwork(t *testing.T) {
	a := newTestAPI(t)
	a.signUpAndLogIn("alice", "1234")
	a.signUpAndLogIn("bob", "5678")

	rec := a.do(http.MethodGet, "/api/network", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NetworkResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Twitter", resp.Name)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "alice", resp.Users[0].Name)
	assert.Equal(t, "bob", resp.Users[1].Name)
	assert.Contains(t, resp.Summary, "Twitter social network:\n")
}

func TestFollowAndUnfollow(t *testing.T) {
	a := newTestAPI(t)
	_, aliceToken := a.signUpAndLogIn("alice", "1234")
	a.signUpAndLogIn("bob", "5678")

	rec := a.do(http.MethodPost, "/api/users/bob/followers", aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantError  string
	}{
		{"follow twice", http.MethodPost, "/api/users/bob/followers", aliceToken,
			http.StatusConflict, "You are already following this user"},
		{"follow self", http.MethodPost, "/api/users/alice/followers", aliceToken,
			http.StatusBadRequest, "Users cannot follow themselves"},
		{"unknown user", http.MethodPost, "/api/users/eve/followers", aliceToken,
			http.StatusNotFound, "User not found"},
		{"no token", http.MethodPost, "/api/users/bob/followers", "",
			http.StatusUnauthorized, "Authorization header required"},
		{"bad token", http.MethodPost, "/api/users/bob/followers", "garbage",
			http.StatusUnauthorized, "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantError, errorMessage(t, rec))
		})
	}

	rec = a.do(http.MethodDelete, "/api/users/bob/followers", aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodDelete, "/api/users/bob/followers", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You have not followed this user", errorMessage(t, rec))
}

func TestFollowWhileOffline(t *testing.T) {
	a := newTestAPI(t)
	_, aliceToken := a.signUpAndLogIn("alice", "1234")
	a.signUpAndLogIn("bob", "5678")

	require.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/sessions", aliceToken, nil).Code)

	rec := a.do(http.MethodPost, "/api/users/bob/followers", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Your user is disconnected", errorMessage(t, rec))
}

func TestNotifications(t *testing.T) {
	a := newTestAPI(t)
	_, aliceToken := a.signUpAndLogIn("alice", "1234")
	_, bobToken := a.signUpAndLogIn("bob", "5678")

	rec := a.do(http.MethodGet, "/api/me/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var empty NotificationsResponse
	decodeBody(t, rec, &empty)
	assert.Empty(t, empty.Notifications)
	assert.Equal(t, "No notifications for alice\n", empty.Text)

	require.Equal(t, http.StatusNoContent, a.do(http.MethodPost, "/api/users/bob/followers", aliceToken, nil).Code)
	a.publish(bobToken, CreatePostRequest{Type: "Text", Text: "hello"})

	// Reading twice returns the same list.
	for i := 0; i < 2; i++ {
		rec = a.do(http.MethodGet, "/api/me/notifications", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp NotificationsResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Notifications, 1)
		assert.Equal(t, "new_post", resp.Notifications[0].Type)
		assert.Equal(t, "bob", resp.Notifications[0].Actor)
		assert.Equal(t, "bob has a new post", resp.Notifications[0].Message)
		assert.Equal(t, "alice's notifications:\nbob has a new post\n", resp.Text)
	}
}
