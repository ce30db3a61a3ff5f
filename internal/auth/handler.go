package auth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/jobhive/jobhive/internal/platform/httpx"
)

// Handler wires HTTP endpoints for registration and login.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. Credential
// endpoints get a stricter per-IP rate limit than the global stack.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	UserType string `json:"userType" validate:"omitempty,oneof=applicant employer admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	UserType  string    `json:"userType"`
	CreatedOn time.Time `json:"createdOn"`
}

type authResponse struct {
	userPayload
	Token string `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if msg, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", msg)
		return
	}

	user, token, err := h.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		UserType: UserType(req.UserType),
	})
	if err != nil {
		h.logger.Warn("register failed", slog.String("email", req.Email), slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, newAuthResponse(user, token))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if msg, ok := h.validate(req); !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", msg)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("email", req.Email), slog.Any("error", err))
		httpx.ProblemFromError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, newAuthResponse(user, token))
}

func (h *Handler) validate(req any) (string, bool) {
	if err := h.validator.Struct(req); err != nil {
		var fields []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields = append(fields, fieldErr.Field())
		}
		return "Invalid or missing fields: " + strings.Join(fields, ", "), false
	}
	return "", true
}

func newAuthResponse(user *User, token string) authResponse {
	return authResponse{
		userPayload: userPayload{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
			UserType:  string(user.UserType),
			CreatedOn: user.CreatedOn,
		},
		Token: token,
	}
}
