package reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

var (
	ErrInvalidTransition = apperror.New(http.StatusConflict, "reservation status does not allow this action")
	ErrInvalidStatus     = apperror.NewValidation("status", "must be one of PENDING, CONFIRMED, REJECTED, CANCELLED")

	// ErrDuplicateCode is returned by the store when a generated booking code is taken.
	ErrDuplicateCode = errors.New("booking code already exists")
	// ErrCodeExhausted means every attempt to allocate a booking code collided.
	ErrCodeExhausted = errors.New("could not allocate a unique booking code")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// OccupyingStatuses are the statuses that hold a slot on the schedule.
var OccupyingStatuses = []Status{StatusPending, StatusConfirmed}

// Occupies reports whether a reservation in this status blocks its slot.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Renter is the walk-in customer behind a reservation.
type Renter struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}

type Reservation struct {
	ID          string
	CourtID     string
	CourtName   string
	Renter      Renter
	Date        time.Time
	Interval    timeslot.Interval
	Status      Status
	BookingCode string
	Payment     *payment.Payment // nil until a proof is attached
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Receipt is returned to the renter once a booking is persisted.
type Receipt struct {
	ReservationID string
	BookingCode   string
}

// Filter defines parameters for the staff listing.
type Filter struct {
	Status   Status
	CourtID  string
	Date     *time.Time
	Search   string // Matches booking code or renter name
	Page     int
	PageSize int
}

// Stats summarises the reservation desk for one day.
type Stats struct {
	Date      time.Time
	Today     int // Reservations played on Date, any status
	Pending   int // Awaiting staff action, any date
	Confirmed int // Confirmed for Date
}
