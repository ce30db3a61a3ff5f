package applications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/observability"
	"github.com/jobhive/jobhive/internal/platform/httpx"
	"github.com/jobhive/jobhive/internal/shared"
)

// Handler wires application endpoints. Routes are mounted under /jobs to
// preserve the public API shape.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authmw    auth.Middleware
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, authmw: authmw, metrics: metrics, validator: validator.New()}
}

// MountRoutes registers application routes on the /jobs router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authmw.RequireAuth)
		r.Post("/apply", h.apply)
		r.Get("/applications", h.listAll)
		r.Get("/applications/user", h.listMine)
	})
}

type applyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Job ID is required")
		return
	}

	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	application, err := h.service.Apply(r.Context(), req.JobID, *identity)
	if err != nil {
		h.logger.Warn("apply failed", slog.String("job_id", req.JobID), slog.String("applicant_id", identity.ID), slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}

	h.metrics.ApplicationAccepted()
	httpx.JSON(w, http.StatusCreated, application)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list applications", slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}
	if details == nil {
		details = []Detail{}
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	details, err := h.service.ListByApplicant(r.Context(), identity.ID)
	if err != nil {
		h.logger.Error("list own applications", slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}
	if details == nil {
		details = []UserDetail{}
	}
	httpx.JSON(w, http.StatusOK, details)
}
