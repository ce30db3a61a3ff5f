package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobhive/jobhive/internal/shared"
)

// RepositoryPort defines data access methods for job postings.
type RepositoryPort interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListUnappliedJobs(ctx context.Context, applicantID string) ([]Job, error)
	UpdateJob(ctx context.Context, job *Job) error
	DeleteJob(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const jobColumns = `id, job_title, location, description, created_on`

// CreateJob inserts a new posting.
func (r *Repository) CreateJob(ctx context.Context, job *Job) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jobs (id, job_title, location, description, created_on) VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.JobTitle, job.Location, job.Description, job.CreatedOn,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetJob fetches a posting by id.
func (r *Repository) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	err := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).Scan(
		&job.ID, &job.JobTitle, &job.Location, &job.Description, &job.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("query job: %w", err)
	}
	return &job, nil
}

// ListJobs returns all postings, newest first.
func (r *Repository) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_on DESC`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// ListUnappliedJobs returns postings the applicant has not applied to yet.
func (r *Repository) ListUnappliedJobs(ctx context.Context, applicantID string) ([]Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		WHERE NOT EXISTS (
			SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.applicant_id = $1
		)
		ORDER BY j.created_on DESC`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("query unapplied jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// UpdateJob saves the mutable fields of a posting.
func (r *Repository) UpdateJob(ctx context.Context, job *Job) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs SET job_title = $2, location = $3, description = $4 WHERE id = $1`,
		job.ID, job.JobTitle, job.Location, job.Description,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteJob removes a posting.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.JobTitle, &job.Location, &job.Description, &job.CreatedOn); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

var _ RepositoryPort = (*Repository)(nil)
