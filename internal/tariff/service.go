package tariff

import (
	"context"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// Quote is the price of one booking interval.
type Quote struct {
	CourtID    string
	Date       time.Time
	Interval   timeslot.Interval
	HourlyRate int64
	Amount     int64
}

type Service interface {
	HourlyRate(ctx context.Context, courtID string, date time.Time) (int64, error)
	Quote(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) (*Quote, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) HourlyRate(ctx context.Context, courtID string, date time.Time) (int64, error) {
	p, err := s.repo.EffectiveFor(ctx, courtID, date)
	if err != nil {
		return 0, err
	}
	return p.HourlyRate, nil
}

func (s *service) Quote(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) (*Quote, error) {
	rate, err := s.HourlyRate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	return &Quote{
		CourtID:    courtID,
		Date:       date,
		Interval:   iv,
		HourlyRate: rate,
		Amount:     AmountFor(rate, iv.Minutes()),
	}, nil
}
