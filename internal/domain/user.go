package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Password length bounds, counted in characters.
const (
	MinPasswordLength = 4
	MaxPasswordLength = 8
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidPassword     = errors.New("password must be between 4 and 8 characters")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a member of the social network.
//
// Followers and notifications are not held on the struct: they live in the
// relationship and notification stores, keyed by the user's ID.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext password, only set between sign-up and hashing
	HashedPassword string    `json:"-"`
	Online         bool      `json:"online"`
	PostCount      int       `json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new online User with the given name and password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before storing the user.
func NewUser(name, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Password:  password,
		Online:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Password != "" {
		if !ValidPasswordLength(u.Password) {
			return ErrInvalidPassword
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	if u.PostCount < 0 {
		return NewValidationError("post_count", "cannot be negative", nil)
	}

	return nil
}

// ValidPasswordLength reports whether password has between MinPasswordLength
// and MaxPasswordLength characters.
func ValidPasswordLength(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= MinPasswordLength && n <= MaxPasswordLength
}

// SetOnline updates the online flag and the UpdatedAt timestamp.
func (u *User) SetOnline(online bool) {
	u.Online = online
	u.UpdatedAt = time.Now().UTC()
}

// IncrementPostCount records one more published post.
func (u *User) IncrementPostCount() {
	u.PostCount++
	u.UpdatedAt = time.Now().UTC()
}

// Describe renders the one-line profile used in network summaries.
func (u *User) Describe(followerCount int) string {
	return fmt.Sprintf("User name: %s, Number of posts: %d, Number of followers: %d",
		u.Name, u.PostCount, followerCount)
}
