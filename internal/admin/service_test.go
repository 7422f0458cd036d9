package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, a *Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return m.Called(ctx, id, t).Error(0)
}

// Minimum bcrypt cost keeps the tests fast.
var hasher = auth.NewBcryptPasswordHasherWithCost(4)

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := hasher.Hash("admin12345")
	require.NoError(t, err)

	repo := &MockRepository{}
	svc := NewService(repo, hasher)

	repo.On("GetByUsername", ctx, "desk").Return(&Admin{ID: "a1", Username: "desk", PasswordHash: hash, Role: auth.RoleOperator, IsActive: true}, nil)
	repo.On("GetByUsername", ctx, "gone").Return(&Admin{ID: "a2", Username: "gone", PasswordHash: hash, Role: auth.RoleOperator, IsActive: false}, nil)
	repo.On("GetByUsername", ctx, "nobody").Return(nil, apperror.NewNotFound("admin", "nobody"))
	repo.On("UpdateLastLogin", ctx, "a1", mock.AnythingOfType("time.Time")).Return(errors.New("db hiccup"))

	a, err := svc.Login(ctx, "  Desk ", "admin12345")
	require.NoError(t, err, "a failed last-login update does not fail the login")
	assert.Equal(t, "a1", a.ID)

	_, err = svc.Login(ctx, "desk", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "gone", "admin12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "admin12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "", "admin12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_EnsureAccount(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{}
	svc := NewService(repo, hasher)

	repo.On("GetByUsername", ctx, "owner").Return(&Admin{ID: "a1"}, nil)
	repo.On("GetByUsername", ctx, "new").Return(nil, apperror.NewNotFound("admin", "new"))
	repo.On("Create", ctx, mock.MatchedBy(func(a *Admin) bool {
		return a.Username == "new" && a.Role == auth.RoleSuperAdmin && a.IsActive &&
			hasher.Compare(a.PasswordHash, "supersecret") == nil
	})).Return(nil)

	require.NoError(t, svc.EnsureAccount(ctx, "owner", "supersecret", "Owner", auth.RoleSuperAdmin))
	require.NoError(t, svc.EnsureAccount(ctx, "New", "supersecret", "New Owner", auth.RoleSuperAdmin))
	repo.AssertNumberOfCalls(t, "Create", 1)

	var verr *apperror.ValidationError
	require.ErrorAs(t, svc.EnsureAccount(ctx, "x", "short", "", auth.RoleOperator), &verr)
	assert.Equal(t, "password", verr.Field)
	assert.ErrorIs(t, svc.EnsureAccount(ctx, "x", "longenough", "", "janitor"), ErrInvalidRole)
}
