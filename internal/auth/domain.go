package auth

import "time"

// UserType classifies an account.
type UserType string

const (
	UserTypeApplicant UserType = "applicant"
	UserTypeEmployer  UserType = "employer"
	UserTypeAdmin     UserType = "admin"
)

// Valid reports whether the value is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeApplicant, UserTypeEmployer, UserTypeAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	UserType     UserType
	CreatedOn    time.Time
}
