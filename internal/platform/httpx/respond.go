// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobhive/jobhive/internal/shared"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type    string `json:"type,omitempty"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, message string) {
	JSON(w, status, ProblemDetail{
		Title:   title,
		Status:  status,
		Message: message,
	})
}

// StatusForError maps domain errors to wire statuses.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrEmailTaken),
		errors.Is(err, shared.ErrAlreadyApplied):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ProblemFromError sends a problem response derived from a domain error.
func ProblemFromError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	Problem(w, status, http.StatusText(status), shared.UserSafeMessage(err))
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
