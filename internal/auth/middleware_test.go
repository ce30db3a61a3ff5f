package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobhive/jobhive/internal/shared"
)

func protectedProbe(t *testing.T, reached *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		identity := shared.IdentityFromContext(r.Context())
		if identity == nil {
			t.Fatal("expected identity in context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingHeader(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	mw := Middleware{Tokens: tokens, Users: newMockRepository()}

	reached := false
	handler := mw.RequireAuth(protectedProbe(t, &reached))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/new", nil))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run without credentials")
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	mw := Middleware{Tokens: tokens, Users: newMockRepository()}

	reached := false
	handler := mw.RequireAuth(protectedProbe(t, &reached))

	for _, header := range []string{"Token abc", "bearer abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/jobs/new", nil)
		req.Header.Set("Authorization", header)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, res.Code)
		}
	}
	if reached {
		t.Fatal("handler must not run with malformed credentials")
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	mw := Middleware{Tokens: tokens, Users: newMockRepository()}

	reached := false
	handler := mw.RequireAuth(protectedProbe(t, &reached))

	req := httptest.NewRequest(http.MethodGet, "/jobs/new", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run with an invalid token")
	}
}

func TestRequireAuthStaleSubject(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	mw := Middleware{Tokens: tokens, Users: newMockRepository()}

	// Valid signature, but no such user in the credential store.
	token, err := tokens.Issue("ghost-user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	reached := false
	handler := mw.RequireAuth(protectedProbe(t, &reached))

	req := httptest.NewRequest(http.MethodGet, "/jobs/new", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale subject, got %d", res.Code)
	}
	if reached {
		t.Fatal("handler must not run for a deleted user")
	}
}

func TestRequireAuthResolvesIdentity(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	repo := newMockRepository()
	user := &User{ID: "u1", Name: "A", Email: "a@x.com", UserType: UserTypeApplicant}
	if err := repo.CreateUser(httptest.NewRequest(http.MethodGet, "/", nil).Context(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	mw := Middleware{Tokens: tokens, Users: repo}

	token, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *shared.Identity
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/jobs/new", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got == nil || got.ID != "u1" || got.Email != "a@x.com" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}
