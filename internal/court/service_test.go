package court

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Court, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Court), args.Error(1)
}

func TestService_GetActive(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{}
	svc := NewService(repo)

	repo.On("GetByID", ctx, "open").Return(&Court{ID: "open", Name: "Futsal A", Sport: SportFutsal, Active: true}, nil)
	repo.On("GetByID", ctx, "closed").Return(&Court{ID: "closed", Name: "Old Hall", Active: false}, nil)
	repo.On("GetByID", ctx, "missing").Return(nil, apperror.NewNotFound("court", "missing"))

	c, err := svc.GetActive(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, "Futsal A", c.Name)

	_, err = svc.GetActive(ctx, "closed")
	assert.ErrorIs(t, err, ErrInactive)

	_, err = svc.GetActive(ctx, "missing")
	assert.True(t, apperror.IsNotFound(err))

	repo.AssertExpectations(t)
}

func TestService_ListRejectsUnknownSport(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), Filter{Sport: "curling"})
	assert.ErrorIs(t, err, ErrInvalidSport)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
