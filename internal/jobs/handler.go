package jobs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/platform/httpx"
	"github.com/jobhive/jobhive/internal/shared"
)

// Handler wires job posting endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authmw    auth.Middleware
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authmw: authmw, validator: validator.New()}
}

// MountRoutes registers job routes on the provided router. The listing is
// public; everything else requires a resolved identity.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listJobs)
	r.Group(func(r chi.Router) {
		r.Use(h.authmw.RequireAuth)
		r.Post("/", h.createJob)
		r.Get("/new", h.listUnapplied)
		r.Post("/details", h.jobDetails)
		r.Put("/update", h.updateJob)
		r.Delete("/delete", h.deleteJob)
	})
}

type createJobRequest struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type jobIDRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

type updateJobRequest struct {
	JobID       string `json:"jobId" validate:"required"`
	JobTitle    string `json:"jobTitle"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list jobs", slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}
	httpx.JSON(w, http.StatusOK, jobs)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !h.decode(w, r, &req) {
		return
	}

	job, err := h.service.Create(r.Context(), CreateJobInput{
		JobTitle:    req.JobTitle,
		Location:    req.Location,
		Description: req.Description,
	}, actorID(r))
	if err != nil {
		h.logger.Error("create job", slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, job)
}

func (h *Handler) listUnapplied(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.ListUnapplied(r.Context(), actorID(r))
	if err != nil {
		h.logger.Error("list unapplied jobs", slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}
	httpx.JSON(w, http.StatusOK, jobs)
}

func (h *Handler) jobDetails(w http.ResponseWriter, r *http.Request) {
	var req jobIDRequest
	if !h.decode(w, r, &req) {
		return
	}

	job, err := h.service.Get(r.Context(), req.JobID)
	if err != nil {
		httpx.ProblemFromError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	var req updateJobRequest
	if !h.decode(w, r, &req) {
		return
	}

	job, err := h.service.Update(r.Context(), UpdateJobInput{
		JobID:       req.JobID,
		JobTitle:    req.JobTitle,
		Location:    req.Location,
		Description: req.Description,
	}, actorID(r))
	if err != nil {
		httpx.ProblemFromError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	var req jobIDRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Delete(r.Context(), req.JobID, actorID(r)); err != nil {
		httpx.ProblemFromError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Job removed"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := httpx.DecodeJSON(r, req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Missing required fields")
		return false
	}
	return true
}

func actorID(r *http.Request) string {
	if identity := shared.IdentityFromContext(r.Context()); identity != nil {
		return identity.ID
	}
	return ""
}
