// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// Social graph and session errors. Every one of them is checked before any
// state is mutated, so a failed operation leaves no partial effects.
var (
	// ErrUserOffline is returned when the acting user (or, for likes and
	// comments, the post author) is logged out.
	ErrUserOffline = errors.New("your user is disconnected")

	// ErrAlreadyFollowing is returned when following a user twice.
	ErrAlreadyFollowing = errors.New("you are already following this user")

	// ErrNotFollowing is returned when unfollowing a user that was never followed.
	ErrNotFollowing = errors.New("you have not followed this user")

	// ErrSelfFollow is returned when a user tries to follow or unfollow themselves.
	ErrSelfFollow = errors.New("users cannot follow themselves")

	// ErrAlreadyLoggedIn is returned by log-in for a user that is online.
	ErrAlreadyLoggedIn = errors.New("the user is already logged in")

	// ErrAlreadyLoggedOut is returned by log-out for a user that is offline.
	ErrAlreadyLoggedOut = errors.New("the user is already logged out")

	// ErrWrongPassword is returned when an owner-only operation is attempted
	// with a password that does not match the owner's.
	ErrWrongPassword = errors.New("the password is incorrect")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
