package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/token-gate/internal/domain"
)

// ErrStoreUnavailable is returned when the service runs without a database.
var ErrStoreUnavailable = errors.New("user store unavailable")

// UserRepository defines persistence access for token holders.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation. A nil pool
// yields a repository whose every call fails with ErrStoreUnavailable.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if r.pool == nil {
		return ErrStoreUnavailable
	}

	const query = `
        INSERT INTO users (username, password_hash, roles, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		roles,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}

	const query = `
        SELECT id, username, password_hash, roles, active, created_at, updated_at
        FROM users WHERE username=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Roles,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
