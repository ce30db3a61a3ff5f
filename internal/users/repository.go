package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for the user directory.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUsers returns all users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, user_type, created_on FROM users ORDER BY created_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.UserType, &user.CreatedOn); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

var _ RepositoryPort = (*Repository)(nil)
