package applications

import "time"

// Application links an applicant to a job posting.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	ApplicantID string    `json:"applicantId"`
	CreatedOn   time.Time `json:"createdOn"`
}

// Detail is an application joined with its job and applicant.
type Detail struct {
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"createdOn"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	AppliedOn   time.Time `json:"appliedOn"`
}

// UserDetail is an application joined with its job, scoped to one applicant.
type UserDetail struct {
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"createdOn"`
	AppliedOn   time.Time `json:"appliedOn"`
}
