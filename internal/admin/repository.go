package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing admin accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	Create(ctx context.Context, a *Admin) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectAdmin = `
	SELECT id, username, password_hash, name, role, is_active, created_at, last_login_at
	FROM public.admins
`

func scanAdmin(row pgx.Row, key string) (*Admin, error) {
	var a Admin
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&a.IsActive,
		&a.CreatedAt,
		&a.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("admin", key)
		}
		return nil, apperror.Store("get admin", err)
	}
	return &a, nil
}

func (r *pgxRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, selectAdmin+" WHERE username = $1", username), username)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, selectAdmin+" WHERE id = $1", id), id)
}

func (r *pgxRepository) Create(ctx context.Context, a *Admin) error {
	const query = `
		INSERT INTO public.admins (username, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		a.Username,
		a.PasswordHash,
		a.Name,
		a.Role,
		a.IsActive,
	).Scan(&a.ID, &a.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return apperror.Store("create admin", err)
	}

	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.admins
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return apperror.Store("update admin last login", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NewNotFound("admin", id)
	}
	return nil
}
