package api

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/http"
	"strings"

	"github.com/phrazzld/minisocial/internal/api/shared"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/phrazzld/minisocial/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrUserOffline):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrNotFollowing),
		errors.Is(err, domain.ErrAlreadyLoggedIn),
		errors.Is(err, domain.ErrAlreadyLoggedOut),
		errors.Is(err, domain.ErrAlreadySold):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrUnknownPostType),
		errors.Is(err, domain.ErrEmptyImagePath),
		errors.Is(err, domain.ErrEmptySaleTitle),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, service.ErrNotSalePost),
		errors.Is(err, service.ErrNotImagePost):
		return http.StatusBadRequest

	// Images that exist but cannot be drawn
	case errors.Is(err, image.ErrFormat),
		errors.Is(err, render.ErrEmptyImage):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// safeMessages lists, in match order, the errors whose client-facing message
// is fixed.
var safeMessages = []struct {
	err     error
	message string
}{
	{auth.ErrExpiredToken, "Token expired"},
	{auth.ErrInvalidToken, "Invalid token"},
	{auth.ErrTokenNotYetValid, "Invalid token"},
	{auth.ErrMissingToken, "Authorization header required"},
	{domain.ErrWrongPassword, "The password is incorrect"},
	{domain.ErrUnauthorized, "Only the author can do this"},
	{domain.ErrUserOffline, "Your user is disconnected"},
	{store.ErrUserNotFound, "User not found"},
	{store.ErrPostNotFound, "Post not found"},
	{fs.ErrNotExist, "Image not found"},
	{store.ErrUserExists, "User with the same name already exists"},
	{domain.ErrAlreadyFollowing, "You are already following this user"},
	{domain.ErrNotFollowing, "You have not followed this user"},
	{domain.ErrSelfFollow, "Users cannot follow themselves"},
	{domain.ErrAlreadyLoggedIn, "The user is already logged in"},
	{domain.ErrAlreadyLoggedOut, "The user is already logged out"},
	{domain.ErrAlreadySold, "The product has already been sold"},
	{domain.ErrInvalidPassword, "Password must be between 4 and 8 characters"},
	{domain.ErrInvalidDiscount, "Discount percent must be between 0 and 100"},
	{domain.ErrUnknownPostType, "Unsupported post type"},
	{domain.ErrEmptyImagePath, "Image path is required"},
	{domain.ErrEmptySaleTitle, "Sale title is required"},
	{domain.ErrNegativePrice, "Price cannot be negative"},
	{service.ErrNotSalePost, "Post is not a sale listing"},
	{service.ErrNotImagePost, "Post is not an image post"},
	{domain.ErrInvalidID, "Invalid ID"},
	{image.ErrFormat, "Image cannot be displayed"},
	{render.ErrEmptyImage, "Image cannot be displayed"},
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	for _, m := range safeMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	switch {
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and sanitized message for err and logs
// the redacted detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'SignUpRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
