package court

import (
	"context"
	"slices"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Court, error)
	// GetActive returns the court only if it is open for booking.
	GetActive(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetActive(ctx context.Context, id string) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, ErrInactive
	}
	return c, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, error) {
	if filter.Sport != "" && !slices.Contains(ValidSports, filter.Sport) {
		return nil, ErrInvalidSport
	}
	return s.repo.List(ctx, filter)
}
