package payment

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

var (
	ErrAlreadyVerified  = apperror.New(http.StatusConflict, "payment already verified")
	ErrAlreadyConfirmed = apperror.New(http.StatusConflict, "reservation already confirmed")
	ErrProofRequired    = apperror.NewValidation("proof", "is required")
	ErrProofTooLarge    = apperror.NewValidation("proof", "file is too large")
	ErrProofType        = apperror.NewValidation("proof", "must be a JPEG, PNG, WebP image or a PDF")
	ErrInvalidMethod    = apperror.NewValidation("method", "must be one of transfer, qris, cash")
	ErrNotPayable       = apperror.NewValidation("booking_code", "reservation is no longer active")
)

type Method string

const (
	MethodTransfer Method = "transfer"
	MethodQRIS     Method = "qris"
	MethodCash     Method = "cash"
)

func (m Method) Valid() bool {
	return m == MethodTransfer || m == MethodQRIS || m == MethodCash
}

type VerificationStatus string

const (
	StatusPending VerificationStatus = "PENDING"
	StatusValid   VerificationStatus = "VALID"
	StatusInvalid VerificationStatus = "INVALID"
)

// Payment is the single payment record of a reservation.
type Payment struct {
	ID                 string
	ReservationID      string
	Amount             int64
	Method             Method
	ProofPath          string
	ThumbnailPath      *string
	VerificationStatus VerificationStatus
	VerifiedBy         *string // Admin ID
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Payable is what payment attachment needs to know about a reservation.
type Payable struct {
	ReservationID string
	BookingCode   string
	CourtID       string
	Date          time.Time
	Interval      timeslot.Interval
	Status        string // Reservation status, see CheckPayable
}

// Reservation statuses as carried by Payable.Status.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
)

// CheckPayable returns nil when a reservation in the given status accepts a proof.
// Only PENDING reservations do: a confirmed reservation's payment is either VALID or absent.
func CheckPayable(reservationStatus string) error {
	switch reservationStatus {
	case ReservationPending:
		return nil
	case ReservationConfirmed:
		return ErrAlreadyConfirmed
	default:
		return ErrNotPayable
	}
}
