package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jobhive/jobhive/internal/shared"
)

func TestTokenIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	token, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("user id mismatch: got %q want %q", userID, "user-123")
	}
}

func TestTokenVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := &TokenService{secret: []byte("secret"), ttl: -time.Second}
	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected shared.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret", time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(token)
	if !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected shared.ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Verify(token); !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("expected shared.ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenVerifyTamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue("u3")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + strings.Repeat("A", len(parts[1])) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected shared.ErrInvalidToken for tampered payload, got %v", err)
	}
}
