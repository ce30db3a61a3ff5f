package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobhive/jobhive/internal/platform/httpx"
	"github.com/jobhive/jobhive/internal/shared"
)

const bearerPrefix = "Bearer "

// Middleware gates protected routes: it resolves the caller identity from the
// Authorization header before any handler body runs.
type Middleware struct {
	Tokens *TokenService
	Users  Repository
	Logger *slog.Logger
}

// RequireAuth verifies the bearer token, resolves the subject against the
// credential store and attaches the identity to the request context. Any
// failure rejects the request with 401 before it reaches the handler.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
			return
		}

		userID, err := m.Tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(shared.ErrInvalidToken))
			return
		}

		// Tokens for since-deleted users are as invalid as tampered ones.
		user, err := m.Users.FindByID(r.Context(), userID)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token subject not resolvable", slog.String("user_id", userID), slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(shared.ErrInvalidToken))
			return
		}

		ctx := shared.ContextWithIdentity(r.Context(), &shared.Identity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.UserType),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
