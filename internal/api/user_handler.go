package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/minisocial/internal/api/shared"
	"github.com/phrazzld/minisocial/internal/domain"
)

// UserHandler handles the network summary, the follow graph and
// notifications.
type UserHandler struct {
	network Network
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(network Network) *UserHandler {
	return &UserHandler{network: network}
}

// GetNetwork handles GET /network.
func (h *UserHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	users, err := h.network.Users(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	summary, err := h.network.Summary(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := NetworkResponse{
		Name:    h.network.Name(),
		Summary: summary,
		Users:   make([]UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, userToResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Follow handles POST /users/{name}/followers: the caller follows {name}.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, h.network.Accounts().Follow)
}

// Unfollow handles DELETE /users/{name}/followers.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, h.network.Accounts().Unfollow)
}

func (h *UserHandler) changeFollow(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, follower, followee *domain.User) error,
) {
	accounts := h.network.Accounts()
	follower, ok := currentUser(w, r, accounts)
	if !ok {
		return
	}

	followee, err := accounts.GetUserByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := op(r.Context(), follower, followee); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Notifications handles GET /me/notifications. Reading does not clear them.
func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	accounts := h.network.Accounts()
	user, ok := currentUser(w, r, accounts)
	if !ok {
		return
	}

	notifications, err := accounts.Notifications(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var text bytes.Buffer
	if err := accounts.PrintNotifications(r.Context(), user, &text); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := NotificationsResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
		Text:          text.String(),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, notificationToResponse(n))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
