package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobhive/jobhive/internal/shared"
)

// RepositoryPort defines data access methods for applications.
type RepositoryPort interface {
	CreateApplication(ctx context.Context, application *Application) error
	HasApplied(ctx context.Context, jobID, applicantID string) (bool, error)
	ListAll(ctx context.Context) ([]Detail, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]UserDetail, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateApplication inserts an application. The unique index on
// (job_id, applicant_id) is the authoritative duplicate guard: concurrent
// double-submits race to the insert and all but one surface
// shared.ErrAlreadyApplied.
func (r *Repository) CreateApplication(ctx context.Context, application *Application) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, created_on) VALUES ($1, $2, $3, $4)`,
		application.ID, application.JobID, application.ApplicantID, application.CreatedOn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrAlreadyApplied
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// HasApplied reports whether the applicant already applied to the job.
func (r *Repository) HasApplied(ctx context.Context, jobID, applicantID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return exists, nil
}

// ListAll returns every application joined with job and applicant fields.
func (r *Repository) ListAll(ctx context.Context) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT j.id, j.job_title, j.location, j.description, j.created_on,
		       u.id, u.name, u.email, a.created_on
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.applicant_id
		ORDER BY a.created_on DESC`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(
			&d.JobID, &d.JobTitle, &d.Location, &d.Description, &d.CreatedOn,
			&d.UserID, &d.Username, &d.Email, &d.AppliedOn,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByApplicant returns the applicant's applications joined with job fields.
func (r *Repository) ListByApplicant(ctx context.Context, applicantID string) ([]UserDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT j.id, j.job_title, j.location, j.description, j.created_on, a.created_on
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.applicant_id = $1
		ORDER BY a.created_on DESC`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("query applications by applicant: %w", err)
	}
	defer rows.Close()

	var details []UserDetail
	for rows.Next() {
		var d UserDetail
		if err := rows.Scan(&d.JobID, &d.JobTitle, &d.Location, &d.Description, &d.CreatedOn, &d.AppliedOn); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

var _ RepositoryPort = (*Repository)(nil)
