package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a bearer token that failed verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailTaken occurs when registering an email that is already in use.
	ErrEmailTaken = errors.New("user already exists")
	// ErrAlreadyApplied occurs when a user applies to the same job twice.
	ErrAlreadyApplied = errors.New("already applied for this job")
)

// UserSafeMessage returns a message safe to show to callers. Known domain
// errors pass through; anything else collapses to a generic message so
// internal details never leak onto the wire.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrInvalidToken):
		return "Invalid or expired token"
	case errors.Is(err, ErrEmailTaken):
		return "User already exists"
	case errors.Is(err, ErrAlreadyApplied):
		return "You have already applied for this job"
	default:
		return "Internal server error"
	}
}

