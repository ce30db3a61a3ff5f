package users

import "time"

// User is the directory view of an account; credential fields stay in the
// auth package.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	UserType  string    `json:"userType"`
	CreatedOn time.Time `json:"createdOn"`
}
