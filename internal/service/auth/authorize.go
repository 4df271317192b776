package auth

import (
	"github.com/phrazzld/minisocial/internal/domain"
)

// Outcome is the result of an owner authorization check.
type Outcome int

// Possible outcomes
const (
	// Granted means the password matched the owner's.
	Granted Outcome = iota
	// DeniedWrongPassword means the password did not match.
	DeniedWrongPassword
	// DeniedNoOwner means there was no owner to check against.
	DeniedNoOwner
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case DeniedWrongPassword:
		return "denied_wrong_password"
	case DeniedNoOwner:
		return "denied_no_owner"
	default:
		return "unknown"
	}
}

// Decision is the typed result of AuthorizeOwner.
type Decision struct {
	Outcome Outcome
	// OwnerName is the name of the user the check ran against, if any.
	OwnerName string
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == Granted
}

// Err maps a denial to its domain error; it is nil when access is granted.
func (d Decision) Err() error {
	switch d.Outcome {
	case Granted:
		return nil
	case DeniedWrongPassword:
		return domain.ErrWrongPassword
	default:
		return domain.ErrUnauthorized
	}
}

// AuthorizeOwner checks password against owner's stored hash. It only
// decides; callers apply the business change when the decision allows it.
func AuthorizeOwner(verifier PasswordVerifier, owner *domain.User, password string) Decision {
	if owner == nil || owner.HashedPassword == "" {
		return Decision{Outcome: DeniedNoOwner}
	}
	if err := verifier.Compare(owner.HashedPassword, password); err != nil {
		return Decision{Outcome: DeniedWrongPassword, OwnerName: owner.Name}
	}
	return Decision{Outcome: Granted, OwnerName: owner.Name}
}
