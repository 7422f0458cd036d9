package block

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type Repository interface {
	Create(ctx context.Context, b *Block) error
	List(ctx context.Context, filter Filter) ([]*Block, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Block) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blocks").
		Columns("court_id", "date", "start_minute", "end_minute", "kind", "note", "created_by").
		Values(b.CourtID, b.Date, int(b.Interval.Start), int(b.Interval.End), b.Kind, b.Note, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create block query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return apperror.Store("create block", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Block, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "court_id", "date", "start_minute", "end_minute", "kind", "note", "created_by", "created_at",
	).
		From("public.blocks").
		Where(squirrel.Eq{"date": filter.Date})

	if len(filter.CourtIDs) > 0 {
		query = query.Where(squirrel.Eq{"court_id": filter.CourtIDs})
	}

	sql, args, err := query.OrderBy("court_id", "start_minute").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Store("list blocks", err)
	}
	defer rows.Close()

	var blocks []*Block
	for rows.Next() {
		var (
			b          Block
			start, end int
		)
		if err := rows.Scan(
			&b.ID, &b.CourtID, &b.Date, &start, &end, &b.Kind, &b.Note, &b.CreatedBy, &b.CreatedAt,
		); err != nil {
			return nil, apperror.Store("scan block", err)
		}
		b.Interval = timeslot.Interval{Start: timeslot.Clock(start), End: timeslot.Clock(end)}
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("list blocks", err)
	}

	return blocks, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete block query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperror.Store("delete block", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NewNotFound("block", id)
	}
	return nil
}
