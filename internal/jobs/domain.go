package jobs

import "time"

// Job represents a job posting.
type Job struct {
	ID          string    `json:"id"`
	JobTitle    string    `json:"jobTitle"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"createdOn"`
}
