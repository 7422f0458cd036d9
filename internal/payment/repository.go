package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

type Repository interface {
	// Upsert creates or replaces the payment of p.ReservationID while the reservation is PENDING.
	// Otherwise nothing is written and the CheckPayable error is returned.
	// A payment that is already VALID is left untouched and ErrAlreadyVerified is returned.
	Upsert(ctx context.Context, p *Payment) error
	GetByReservation(ctx context.Context, reservationID string) (*Payment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// upsertPayment only writes while the reservation is PENDING. FOR SHARE orders it
// against the row lock taken by Confirm.
const upsertPayment = `
	INSERT INTO public.payments (reservation_id, amount, method, proof_path, thumbnail_path, verification_status)
	SELECT r.id, $2, $3, $4, $5, 'PENDING'
	FROM public.reservations r
	WHERE r.id = $1 AND r.status = 'PENDING'
	FOR SHARE
	ON CONFLICT (reservation_id) DO UPDATE SET
		amount = EXCLUDED.amount,
		method = EXCLUDED.method,
		proof_path = EXCLUDED.proof_path,
		thumbnail_path = EXCLUDED.thumbnail_path,
		verification_status = EXCLUDED.verification_status,
		verified_by = NULL,
		verified_at = NULL,
		updated_at = now()
	WHERE payments.verification_status <> 'VALID'
	RETURNING id, verification_status, created_at, updated_at
`

func (r *pgxRepository) Upsert(ctx context.Context, p *Payment) error {
	err := r.pool.QueryRow(ctx, upsertPayment,
		p.ReservationID, p.Amount, p.Method, p.ProofPath, p.ThumbnailPath,
	).Scan(&p.ID, &p.VerificationStatus, &p.CreatedAt, &p.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return apperror.Store("upsert payment", err)
	}
	return r.refusal(ctx, p.ReservationID)
}

// refusal explains why upsertPayment wrote nothing.
func (r *pgxRepository) refusal(ctx context.Context, reservationID string) error {
	const query = `
		SELECT r.status, p.verification_status
		FROM public.reservations r
		LEFT JOIN public.payments p ON p.reservation_id = r.id
		WHERE r.id = $1
	`

	var status string
	var verification *VerificationStatus
	if err := r.pool.QueryRow(ctx, query, reservationID).Scan(&status, &verification); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("reservation", reservationID)
		}
		return apperror.Store("upsert payment", err)
	}
	if err := CheckPayable(status); err != nil {
		return err
	}
	return ErrAlreadyVerified
}

func (r *pgxRepository) GetByReservation(ctx context.Context, reservationID string) (*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "reservation_id", "amount", "method", "proof_path", "thumbnail_path",
		"verification_status", "verified_by", "verified_at", "created_at", "updated_at",
	).
		From("public.payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment query failed: %w", err)
	}

	var p Payment
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.ProofPath, &p.ThumbnailPath,
		&p.VerificationStatus, &p.VerifiedBy, &p.VerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("payment", reservationID)
		}
		return nil, apperror.Store("get payment", err)
	}
	return &p, nil
}
