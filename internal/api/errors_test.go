package api

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/phrazzld/minisocial/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong password", domain.ErrWrongPassword, http.StatusForbidden},
		{"not the owner", domain.ErrUnauthorized, http.StatusForbidden},
		{"offline", fmt.Errorf("failed to follow: %w", domain.ErrUserOffline), http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"post not found", store.ErrPostNotFound, http.StatusNotFound},
		{"image missing", fmt.Errorf("failed to open image: %w", os.ErrNotExist), http.StatusNotFound},
		{"user exists", fmt.Errorf("failed to sign up: %w", store.ErrUserExists), http.StatusConflict},
		{"already following", domain.ErrAlreadyFollowing, http.StatusConflict},
		{"not following", domain.ErrNotFollowing, http.StatusConflict},
		{"already logged in", domain.ErrAlreadyLoggedIn, http.StatusConflict},
		{"already logged out", domain.ErrAlreadyLoggedOut, http.StatusConflict},
		{"already sold", domain.ErrAlreadySold, http.StatusConflict},
		{"invalid password", domain.ErrInvalidPassword, http.StatusBadRequest},
		{"self follow", domain.ErrSelfFollow, http.StatusBadRequest},
		{"unknown post type", fmt.Errorf("%w: %q", domain.ErrUnknownPostType, "Video"), http.StatusBadRequest},
		{"invalid discount", domain.ErrInvalidDiscount, http.StatusBadRequest},
		{"not a sale", service.ErrNotSalePost, http.StatusBadRequest},
		{"not an image", service.ErrNotImagePost, http.StatusBadRequest},
		{"validation", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword), http.StatusBadRequest},
		{"undecodable image", fmt.Errorf("failed to decode image: %w", image.ErrFormat), http.StatusUnprocessableEntity},
		{"empty image", render.ErrEmptyImage, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"wrapped sentinel", fmt.Errorf("failed to sign up %q: %w", "bob", store.ErrUserExists),
			"User with the same name already exists"},
		{"post not found", store.ErrPostNotFound, "Post not found"},
		{"field validation", domain.NewValidationError("status", "is not a valid sale status", nil),
			"Invalid status: is not a valid sale status"},
		{"bare validation", domain.ErrValidation, "Validation error"},
		{"invalid entity", fmt.Errorf("%w: %w", store.ErrInvalidEntity, errors.New("x")), "Invalid entity data"},
		{"internal detail", errors.New("open /var/secret/key.pem: permission denied"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	type request struct {
		Name    string  `validate:"required"`
		Percent float64 `validate:"lte=100"`
	}

	v := validator.New()

	err := v.Struct(request{Percent: 1})
	assert.Equal(t, "Invalid Name: required field", SanitizeValidationError(err))

	err = v.Struct(request{Name: "x", Percent: 101})
	assert.Equal(t, "Invalid Percent: too large", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
