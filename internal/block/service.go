package block

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

const maxNoteLength = 255

type CreateRequest struct {
	CourtID   string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Kind      Kind
	Note      string
}

type Service interface {
	Create(ctx context.Context, staff auth.Staff, req CreateRequest) (*Block, error)
	Delete(ctx context.Context, staff auth.Staff, id string) error
	// ListForDate returns every block on date, optionally restricted to some courts.
	ListForDate(ctx context.Context, date time.Time, courtIDs ...string) ([]*Block, error)
}

type service struct {
	repo   Repository
	courts court.Service
	grid   timeslot.Grid
}

func NewService(repo Repository, courts court.Service, grid timeslot.Grid) Service {
	return &service{
		repo:   repo,
		courts: courts,
		grid:   grid,
	}
}

func (s *service) Create(ctx context.Context, staff auth.Staff, req CreateRequest) (*Block, error) {
	if err := staff.Require(); err != nil {
		return nil, err
	}

	if _, err := s.courts.GetByID(ctx, req.CourtID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("court_id", "court does not exist")
		}
		return nil, err
	}

	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return nil, apperror.NewValidation("date", err.Error())
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
	if !req.Kind.Valid() {
		return nil, apperror.NewValidation("kind", "must be one of open, maintenance, event")
	}

	var note *string
	if n := strings.TrimSpace(req.Note); n != "" {
		if len(n) > maxNoteLength {
			return nil, apperror.NewValidation("note", "is too long")
		}
		note = &n
	}

	adminID := staff.AdminID
	b := &Block{
		CourtID:   req.CourtID,
		Date:      date,
		Interval:  iv,
		Kind:      req.Kind,
		Note:      note,
		CreatedBy: &adminID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, staff auth.Staff, id string) error {
	if err := staff.Require(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListForDate(ctx context.Context, date time.Time, courtIDs ...string) ([]*Block, error) {
	if date.IsZero() {
		return nil, errors.New("block: date is required")
	}
	return s.repo.List(ctx, Filter{Date: date, CourtIDs: courtIDs})
}
