package reservation

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

const (
	maxNameLength  = 100
	minPhoneLength = 10
	maxPhoneLength = 20
)

type BookRequest struct {
	CourtID     string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	RenterName  string
	RenterPhone string
}

type Service interface {
	// Book validates the request, checks for conflicts and persists a PENDING reservation.
	Book(ctx context.Context, req BookRequest) (*Receipt, error)
	GetByCode(ctx context.Context, code string) (*Reservation, error)
	// PayableByCode exposes a reservation to payment attachment.
	PayableByCode(ctx context.Context, code string) (*payment.Payable, error)

	Confirm(ctx context.Context, staff auth.Staff, id string) (*Reservation, error)
	Reject(ctx context.Context, staff auth.Staff, id string) (*Reservation, error)
	Cancel(ctx context.Context, staff auth.Staff, id string) (*Reservation, error)
	List(ctx context.Context, staff auth.Staff, filter Filter) ([]*Reservation, int, error)
	// Stats reports the desk counters for date; a zero date means today at the facility.
	Stats(ctx context.Context, staff auth.Staff, date time.Time) (*Stats, error)
}

type service struct {
	repo      Repository
	conflicts *ConflictChecker
	courts    court.Service
	grid      timeslot.Grid
	events    Publisher
	location  *time.Location
	newCode   func() (string, error)
	now       func() time.Time
}

// NewService builds the booking orchestrator. events may be nil.
// location is the facility time zone used to decide what "today" is.
func NewService(repo Repository, courts court.Service, grid timeslot.Grid, events Publisher, location *time.Location) Service {
	if location == nil {
		location = time.UTC
	}
	return &service{
		repo:      repo,
		conflicts: NewConflictChecker(repo),
		courts:    courts,
		grid:      grid,
		events:    events,
		location:  location,
		newCode:   NewBookingCode,
		now:       time.Now,
	}
}

func (s *service) today() time.Time {
	return timeslot.DateOf(s.now().In(s.location))
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Receipt, error) {
	res, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.conflicts.Check(ctx, res.CourtID, res.Date, res.Interval); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, err
		}
		res.BookingCode = code

		err = s.repo.CreateWithRenter(ctx, res)
		if errors.Is(err, ErrDuplicateCode) {
			log.Ctx(ctx).Debug().Int("attempt", attempt).Msg("booking code collision, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Ctx(ctx).Info().
			Str("booking_code", res.BookingCode).
			Str("court_id", res.CourtID).
			Str("slot", timeslot.FormatDate(res.Date)+" "+res.Interval.String()).
			Msg("reservation created")
		s.publish(ctx, EventCreated, newEvent(res, res.Status, "", s.now()))

		return &Receipt{ReservationID: res.ID, BookingCode: res.BookingCode}, nil
	}
	return nil, ErrCodeExhausted
}

// validate checks the request field by field and stops at the first violation.
func (s *service) validate(ctx context.Context, req BookRequest) (*Reservation, error) {
	name := strings.TrimSpace(req.RenterName)
	if name == "" {
		return nil, apperror.NewValidation("renter_name", "is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, apperror.NewValidation("renter_name", "must be at most 100 characters")
	}

	phone := strings.TrimSpace(req.RenterPhone)
	if n := len(phone); n < minPhoneLength || n > maxPhoneLength {
		return nil, apperror.NewValidation("renter_phone", "must be between 10 and 20 characters")
	}

	if _, err := uuid.Parse(req.CourtID); err != nil {
		return nil, apperror.NewValidation("court_id", "must be a valid UUID")
	}
	if _, err := s.courts.GetActive(ctx, req.CourtID); err != nil {
		switch {
		case apperror.IsNotFound(err):
			return nil, apperror.NewValidation("court_id", "court does not exist")
		case errors.Is(err, court.ErrInactive):
			return nil, apperror.NewValidation("court_id", court.ErrInactive.Error())
		default:
			return nil, err
		}
	}

	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return nil, apperror.NewValidation("date", err.Error())
	}
	if date.Before(s.today()) {
		return nil, apperror.NewValidation("date", "must not be in the past")
	}

	start, err := timeslot.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperror.NewValidation("start_time", err.Error())
	}
	end, err := timeslot.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperror.NewValidation("end_time", err.Error())
	}
	iv, err := timeslot.NewInterval(start, end)
	if err != nil {
		return nil, apperror.NewValidation("end_time", err.Error())
	}
	if !s.grid.Contains(iv) {
		return nil, apperror.NewValidation("start_time", "outside operating hours "+s.grid.Span().String())
	}

	return &Reservation{
		CourtID:  req.CourtID,
		Renter:   Renter{Name: name, Phone: phone},
		Date:     date,
		Interval: iv,
		Status:   StatusPending,
	}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *service) GetByCode(ctx context.Context, code string) (*Reservation, error) {
	code = normalizeCode(code)
	if len(code) != CodeLength {
		return nil, apperror.NewNotFound("reservation", code)
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *service) PayableByCode(ctx context.Context, code string) (*payment.Payable, error) {
	r, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &payment.Payable{
		ReservationID: r.ID,
		BookingCode:   r.BookingCode,
		CourtID:       r.CourtID,
		Date:          r.Date,
		Interval:      r.Interval,
		Status:        string(r.Status),
	}, nil
}

func (s *service) Confirm(ctx context.Context, staff auth.Staff, id string) (*Reservation, error) {
	if err := staff.Require(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	at := s.now()
	if err := s.repo.Confirm(ctx, id, staff.AdminID, at); err != nil {
		return nil, err
	}

	confirmed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("booking_code", confirmed.BookingCode).Str("admin_id", staff.AdminID).Msg("reservation confirmed")
	s.publish(ctx, EventConfirmed, newEvent(confirmed, StatusConfirmed, staff.AdminID, at))
	return confirmed, nil
}

func (s *service) Reject(ctx context.Context, staff auth.Staff, id string) (*Reservation, error) {
	return s.transition(ctx, staff, id, []Status{StatusPending}, StatusRejected, EventRejected)
}

func (s *service) Cancel(ctx context.Context, staff auth.Staff, id string) (*Reservation, error) {
	return s.transition(ctx, staff, id, OccupyingStatuses, StatusCancelled, EventCancelled)
}

func (s *service) transition(ctx context.Context, staff auth.Staff, id string, from []Status, to Status, event string) (*Reservation, error) {
	if err := staff.Require(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Transition(ctx, id, from, to); err != nil {
		return nil, err
	}
	r.Status = to

	log.Ctx(ctx).Info().
		Str("booking_code", r.BookingCode).
		Str("status", string(to)).
		Str("admin_id", staff.AdminID).
		Msg("reservation status changed")
	s.publish(ctx, event, newEvent(r, to, staff.AdminID, s.now()))
	return r, nil
}

func (s *service) List(ctx context.Context, staff auth.Staff, filter Filter) ([]*Reservation, int, error) {
	if err := staff.Require(); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Stats(ctx context.Context, staff auth.Staff, date time.Time) (*Stats, error) {
	if err := staff.Require(); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.today()
	}
	return s.repo.Stats(ctx, date)
}
