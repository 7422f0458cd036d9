package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

const bookingCodeConstraint = "reservations_booking_code_key"

type Repository interface {
	// HasOverlap reports whether an occupying reservation on the court and date overlaps iv.
	HasOverlap(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) (bool, error)
	// ListOccupying returns PENDING and CONFIRMED reservations on date, optionally for some courts only.
	ListOccupying(ctx context.Context, date time.Time, courtIDs []string) ([]*Reservation, error)

	// CreateWithRenter inserts the renter and the reservation in one transaction.
	// It returns a ConflictError when the slot was taken concurrently and
	// ErrDuplicateCode when the booking code is not unique.
	CreateWithRenter(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)
	GetByCode(ctx context.Context, code string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Stats(ctx context.Context, date time.Time) (*Stats, error)

	// Confirm moves a PENDING reservation to CONFIRMED and its PENDING payment to VALID atomically.
	Confirm(ctx context.Context, id, adminID string, at time.Time) error
	// Transition moves the reservation to status `to` if its current status is one of from.
	Transition(ctx context.Context, id string, from []Status, to Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var detailColumns = []string{
	"r.id", "r.court_id", "c.name", "rt.id", "rt.name", "rt.phone", "rt.created_at",
	"r.date", "r.start_minute", "r.end_minute", "r.status", "r.booking_code", "r.created_at", "r.updated_at",
	"p.id", "p.amount", "p.method", "p.proof_path", "p.thumbnail_path",
	"p.verification_status", "p.verified_by", "p.verified_at", "p.created_at", "p.updated_at",
}

func detailQuery() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(detailColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Join("public.renters rt ON r.renter_id = rt.id").
		LeftJoin("public.payments p ON p.reservation_id = r.id")
}

// scanDetail scans a row selected with detailColumns, followed by extra destinations.
func scanDetail(row pgx.Row, extra ...any) (*Reservation, error) {
	var (
		r          Reservation
		start, end int
		payID      *string
		amount     *int64
		method     *string
		proofPath  *string
		thumbPath  *string
		verStatus  *string
		verifiedBy *string
		verifiedAt *time.Time
		payCreated *time.Time
		payUpdated *time.Time
	)
	dest := []any{
		&r.ID, &r.CourtID, &r.CourtName, &r.Renter.ID, &r.Renter.Name, &r.Renter.Phone, &r.Renter.CreatedAt,
		&r.Date, &start, &end, &r.Status, &r.BookingCode, &r.CreatedAt, &r.UpdatedAt,
		&payID, &amount, &method, &proofPath, &thumbPath,
		&verStatus, &verifiedBy, &verifiedAt, &payCreated, &payUpdated,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	r.Interval = timeslot.Interval{Start: timeslot.Clock(start), End: timeslot.Clock(end)}
	if payID != nil {
		p := &payment.Payment{
			ID:            *payID,
			ReservationID: r.ID,
			ThumbnailPath: thumbPath,
			VerifiedBy:    verifiedBy,
			VerifiedAt:    verifiedAt,
		}
		if amount != nil {
			p.Amount = *amount
		}
		if method != nil {
			p.Method = payment.Method(*method)
		}
		if proofPath != nil {
			p.ProofPath = *proofPath
		}
		if verStatus != nil {
			p.VerificationStatus = payment.VerificationStatus(*verStatus)
		}
		if payCreated != nil {
			p.CreatedAt = *payCreated
		}
		if payUpdated != nil {
			p.UpdatedAt = *payUpdated
		}
		r.Payment = p
	}
	return &r, nil
}

func occupyingStatuses() []string {
	out := make([]string, len(OccupyingStatuses))
	for i, s := range OccupyingStatuses {
		out[i] = string(s)
	}
	return out
}

func (r *pgxRepository) HasOverlap(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) (bool, error) {
	// Half-open overlap: existing.start < new.end AND new.start < existing.end
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("1").
		From("public.reservations").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": occupyingStatuses()}).
		Where(squirrel.Lt{"start_minute": int(iv.End)}).
		Where(squirrel.Gt{"end_minute": int(iv.Start)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, apperror.Store("check overlap", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListOccupying(ctx context.Context, date time.Time, courtIDs []string) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "court_id", "date", "start_minute", "end_minute", "status", "booking_code").
		From("public.reservations").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": occupyingStatuses()})
	if len(courtIDs) > 0 {
		query = query.Where(squirrel.Eq{"court_id": courtIDs})
	}

	sql, args, err := query.OrderBy("court_id", "start_minute").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list occupying query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Store("list occupying reservations", err)
	}
	defer rows.Close()

	var out []*Reservation
	for rows.Next() {
		var (
			res        Reservation
			start, end int
		)
		if err := rows.Scan(&res.ID, &res.CourtID, &res.Date, &start, &end, &res.Status, &res.BookingCode); err != nil {
			return nil, apperror.Store("scan reservation", err)
		}
		res.Interval = timeslot.Interval{Start: timeslot.Clock(start), End: timeslot.Clock(end)}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("list occupying reservations", err)
	}
	return out, nil
}

func (r *pgxRepository) CreateWithRenter(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		renterSQL, args, err := psql.Insert("public.renters").
			Columns("name", "phone").
			Values(res.Renter.Name, res.Renter.Phone).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create renter query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, renterSQL, args...).Scan(&res.Renter.ID, &res.Renter.CreatedAt); err != nil {
			return err
		}

		resSQL, args, err := psql.Insert("public.reservations").
			Columns("court_id", "renter_id", "date", "start_minute", "end_minute", "status", "booking_code").
			Values(res.CourtID, res.Renter.ID, res.Date, int(res.Interval.Start), int(res.Interval.End), res.Status, res.BookingCode).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create reservation query failed: %w", err)
		}
		return tx.QueryRow(ctx, resSQL, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	})
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.ExclusionViolation:
			return conflictFor(res.CourtID, res.Date, res.Interval)
		case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == bookingCodeConstraint:
			return ErrDuplicateCode
		}
	}
	return apperror.Store("create reservation", err)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"r.id": id}, id)
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"r.booking_code": code}, code)
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq, key string) (*Reservation, error) {
	query, args, err := detailQuery().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanDetail(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("reservation", key)
		}
		return nil, apperror.Store("get reservation", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := detailQuery().Column("count(*) OVER() AS total_count")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"r.court_id": filter.CourtID})
	}
	if filter.Date != nil {
		query = query.Where(squirrel.Eq{"r.date": *filter.Date})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"r.booking_code": pattern},
			squirrel.ILike{"rt.name": pattern},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.
		OrderBy("r.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.Store("list reservations", err)
	}
	defer rows.Close()

	var (
		out   []*Reservation
		total int
	)
	for rows.Next() {
		res, err := scanDetail(rows, &total)
		if err != nil {
			return nil, 0, apperror.Store("scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.Store("list reservations", err)
	}
	return out, total, nil
}

func (r *pgxRepository) Stats(ctx context.Context, date time.Time) (*Stats, error) {
	const query = `
		SELECT
			count(*) FILTER (WHERE date = $1),
			count(*) FILTER (WHERE status = 'PENDING'),
			count(*) FILTER (WHERE date = $1 AND status = 'CONFIRMED')
		FROM public.reservations
	`

	s := Stats{Date: date}
	if err := r.pool.QueryRow(ctx, query, date).Scan(&s.Today, &s.Pending, &s.Confirmed); err != nil {
		return nil, apperror.Store("reservation stats", err)
	}
	return &s, nil
}

func (r *pgxRepository) Confirm(ctx context.Context, id, adminID string, at time.Time) error {
	const confirmReservation = `
		UPDATE public.reservations
		SET status = 'CONFIRMED', updated_at = now()
		WHERE id = $1 AND status = 'PENDING'
	`
	const verifyPayment = `
		UPDATE public.payments
		SET verification_status = 'VALID', verified_by = $2, verified_at = $3, updated_at = now()
		WHERE reservation_id = $1 AND verification_status = 'PENDING'
	`

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, confirmReservation, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return ErrInvalidTransition
		}
		_, err = tx.Exec(ctx, verifyPayment, id, adminID, at)
		return err
	})
	return apperror.Store("confirm reservation", err)
}

func (r *pgxRepository) Transition(ctx context.Context, id string, from []Status, to Status) error {
	fromValues := make([]string, len(from))
	for i, s := range from {
		fromValues[i] = string(s)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromValues}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build transition reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return apperror.Store("update reservation status", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}
