package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jobhive/jobhive/internal/shared"
)

// Service handles job posting business logic.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	audit  shared.Recorder
	logger *slog.Logger
	group  singleflight.Group
}

// NewService builds a Service instance. Cache and audit may be nil.
func NewService(repo RepositoryPort, cache *Cache, audit shared.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, audit: audit, logger: logger}
}

// CreateJobInput carries the fields required for a new posting.
type CreateJobInput struct {
	JobTitle    string
	Location    string
	Description string
}

// Create persists a new posting.
func (s *Service) Create(ctx context.Context, input CreateJobInput, actorID string) (*Job, error) {
	job := &Job{
		ID:          uuid.NewString(),
		JobTitle:    input.JobTitle,
		Location:    input.Location,
		Description: input.Description,
		CreatedOn:   time.Now().UTC(),
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.record(ctx, actorID, "job.create", job.ID)
	return job, nil
}

// Get returns a single posting.
func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	return s.repo.GetJob(ctx, id)
}

// List returns all postings, served through the listing cache when one is
// configured. Concurrent cache misses collapse into a single repository load.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	key, err := s.cache.BuildKey(ctx, "jobs:list")
	if err != nil {
		s.log().Warn("jobs cache key", slog.Any("error", err))
		return s.repo.ListJobs(ctx)
	}

	// The shared load must outlive the leader request: followers joined the
	// same flight and guard their own cancellation below.
	loadCtx := context.WithoutCancel(ctx)
	result := s.group.DoChan(key, func() (interface{}, error) {
		var jobs []Job
		err := s.cache.FetchJSON(loadCtx, key, &jobs, func(ctx context.Context) (interface{}, error) {
			return s.repo.ListJobs(ctx)
		})
		return jobs, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Job), nil
	}
}

// ListUnapplied returns postings the applicant has not applied to.
func (s *Service) ListUnapplied(ctx context.Context, applicantID string) ([]Job, error) {
	return s.repo.ListUnappliedJobs(ctx, applicantID)
}

// UpdateJobInput carries a partial update; empty fields keep the old value.
type UpdateJobInput struct {
	JobID       string
	JobTitle    string
	Location    string
	Description string
}

// Update applies a partial update to a posting.
func (s *Service) Update(ctx context.Context, input UpdateJobInput, actorID string) (*Job, error) {
	job, err := s.repo.GetJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if input.JobTitle != "" {
		job.JobTitle = input.JobTitle
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.record(ctx, actorID, "job.update", job.ID)
	return job, nil
}

// Delete removes a posting.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.record(ctx, actorID, "job.delete", id)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.log().Warn("jobs cache bump", slog.Any("error", err))
	}
}

func (s *Service) record(ctx context.Context, actorID, action, jobID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actorID, Action: action, Entity: "job", EntityID: jobID}); err != nil {
		s.log().Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
