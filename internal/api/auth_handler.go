package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/minisocial/internal/api/shared"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/service/auth"
)

// AuthHandler handles sign-up and session requests.
type AuthHandler struct {
	network    Network
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(network Network, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		network:    network,
		jwtService: jwtService,
		logger:     logger.With("component", "auth_handler"),
	}
}

// SignUp handles POST /users.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.network.SignUp(r.Context(), req.Name, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// LogIn handles POST /sessions. It sets the user online and issues an
// access token; a user who is already online still gets a token.
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.network.Authenticate(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPassword) || errors.Is(err, domain.ErrUnauthorized) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	if err := h.network.LogIn(r.Context(), req.Name, req.Password); err != nil &&
		!errors.Is(err, domain.ErrAlreadyLoggedIn) {
		HandleAPIError(w, r, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		UserID:      user.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	})
}

// LogOut handles DELETE /sessions. The token stays valid, but every action
// that needs an online user fails until the next log-in.
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.network.Accounts())
	if !ok {
		return
	}

	if err := h.network.LogOut(r.Context(), user.Name); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
