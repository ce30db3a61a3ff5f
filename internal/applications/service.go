package applications

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/jobs"
	"github.com/jobhive/jobhive/internal/shared"
)

// JobFinder resolves job postings referenced by applications.
type JobFinder interface {
	GetJob(ctx context.Context, id string) (*jobs.Job, error)
}

// Notifier delivers out-of-band notifications triggered by applications.
type Notifier interface {
	ApplicationReceived(ctx context.Context, email, jobTitle string) error
}

// Service enforces the at-most-one-application-per-(user, job) invariant.
type Service struct {
	repo     RepositoryPort
	finder   JobFinder
	audit    shared.Recorder
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds a Service instance. Audit and notifier may be nil.
func NewService(repo RepositoryPort, finder JobFinder, audit shared.Recorder, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, finder: finder, audit: audit, notifier: notifier, logger: logger}
}

// Apply records an application for the caller. The referenced job must exist.
// The HasApplied pre-check is only a friendly fast path; the database unique
// index is what actually serialises concurrent duplicates.
func (s *Service) Apply(ctx context.Context, jobID string, applicant shared.Identity) (*Application, error) {
	job, err := s.finder.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.repo.HasApplied(ctx, jobID, applicant.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, shared.ErrAlreadyApplied
	}

	application := &Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicant.ID,
		CreatedOn:   time.Now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}

	s.record(ctx, applicant.ID, application.ID)
	if s.notifier != nil {
		if err := s.notifier.ApplicationReceived(ctx, applicant.Email, job.JobTitle); err != nil {
			s.log().Warn("enqueue application notification", slog.Any("error", err))
		}
	}
	return application, nil
}

// ListAll returns every application with joined job and applicant fields.
func (s *Service) ListAll(ctx context.Context) ([]Detail, error) {
	return s.repo.ListAll(ctx)
}

// ListByApplicant returns the caller's applications with joined job fields.
func (s *Service) ListByApplicant(ctx context.Context, applicantID string) ([]UserDetail, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

func (s *Service) record(ctx context.Context, actorID, applicationID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actorID, Action: "application.create", Entity: "application", EntityID: applicationID}); err != nil {
		s.log().Warn("audit record", slog.Any("error", err))
	}
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
