package users

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/shared"
	_ "github.com/jobhive/jobhive/testing"
)

type stubRepo struct {
	users []User
	err   error
}

func (s *stubRepo) ListUsers(ctx context.Context) ([]User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

type userDirectory struct {
	byID map[string]*auth.User
}

func (d *userDirectory) CreateUser(ctx context.Context, user *auth.User) error {
	d.byID[user.ID] = user
	return nil
}

func (d *userDirectory) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range d.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (d *userDirectory) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, ok := d.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, repo *stubRepo) (http.Handler, string) {
	t.Helper()
	tokens := auth.NewTokenService("users-handler-secret", time.Hour)
	directory := &userDirectory{byID: map[string]*auth.User{
		"u1": {ID: "u1", Name: "Ana", Email: "ana@example.com", UserType: auth.UserTypeApplicant},
	}}
	token, err := tokens.Issue("u1")
	require.NoError(t, err)

	handler := NewHandler(testLogger(), NewService(repo), auth.Middleware{Tokens: tokens, Users: directory, Logger: testLogger()})

	r := chi.NewRouter()
	r.Route("/users", handler.MountRoutes)
	return r, token
}

func TestListUsersRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsers(t *testing.T) {
	repo := &stubRepo{users: []User{
		{ID: "u1", Name: "Ana", Email: "ana@example.com", UserType: "applicant"},
		{ID: "u2", Name: "Bea", Email: "bea@example.com", UserType: "employer"},
	}}
	router, token := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "Ana", got[0].Name)
}

func TestListUsersEmptyIsArray(t *testing.T) {
	router, token := newTestRouter(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListUsersRepositoryFailure(t *testing.T) {
	router, token := newTestRouter(t, &stubRepo{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
