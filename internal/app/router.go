package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jobhive/jobhive/internal/applications"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/jobs"
	"github.com/jobhive/jobhive/internal/observability"
	"github.com/jobhive/jobhive/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	AuthHandler         *auth.Handler
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	UsersHandler        *users.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with jobhive defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/jobs", func(r chi.Router) {
		params.JobsHandler.MountRoutes(r)
		params.ApplicationsHandler.MountRoutes(r)
	})
	if params.UsersHandler != nil {
		r.Route("/users", params.UsersHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
