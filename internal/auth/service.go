package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/shared"
)

// Notifier delivers out-of-band notifications triggered by auth events.
type Notifier interface {
	UserRegistered(ctx context.Context, email, name string) error
}

// Service wraps registration and login business rules.
type Service struct {
	repo     Repository
	hasher   Hasher
	tokens   *TokenService
	audit    shared.Recorder
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a new Service. Audit and notifier may be nil;
// both are treated as best effort.
func NewService(repo Repository, hasher Hasher, tokens *TokenService, audit shared.Recorder, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens, audit: audit, notifier: notifier, logger: logger}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	UserType UserType
}

// Register creates an account and returns it together with a fresh token.
// A second registration with the same email fails with shared.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	userType := input.UserType
	if userType == "" {
		userType = UserTypeApplicant
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
		Phone:        input.Phone,
		UserType:     userType,
		CreatedOn:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.record(ctx, user.ID, "user.register", "user", user.ID, nil)
	if s.notifier != nil {
		if err := s.notifier.UserRegistered(ctx, user.Email, user.Name); err != nil {
			s.log().Warn("enqueue welcome notification", slog.Any("error", err))
		}
	}
	return user, token, nil
}

// Login validates email/password credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.record(ctx, user.ID, "user.login", "user", user.ID, nil)
	return user, token, nil
}

func (s *Service) record(ctx context.Context, actorID, action, entity, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID, Meta: meta}); err != nil {
		s.log().Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
