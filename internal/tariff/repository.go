package tariff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

type Repository interface {
	// EffectiveFor returns the period whose [start, end] range contains date.
	EffectiveFor(ctx context.Context, courtID string, date time.Time) (*Period, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) EffectiveFor(ctx context.Context, courtID string, date time.Time) (*Period, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "court_id", "hourly_rate", "effective_start", "effective_end", "created_at",
	).
		From("public.tariffs").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.LtOrEq{"effective_start": date}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_end": nil},
			squirrel.GtOrEq{"effective_end": date},
		}).
		OrderBy("effective_start DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build effective tariff query failed: %w", err)
	}

	var p Period
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.CourtID, &p.HourlyRate, &p.EffectiveStart, &p.EffectiveEnd, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("tariff", courtID)
		}
		return nil, apperror.Store("get effective tariff", err)
	}
	return &p, nil
}
