package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password")
	ErrUsernameTaken      = apperror.New(http.StatusConflict, "username already taken")
	ErrInvalidRole        = apperror.NewValidation("role", "must be superadmin or operator")
)

const minPasswordLength = 8

// Service defines staff account operations.
type Service interface {
	// Login checks credentials and returns the account. Every failure looks the same to the caller.
	Login(ctx context.Context, username, password string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	// EnsureAccount creates the account unless the username already exists.
	EnsureAccount(ctx context.Context, username, password, name string, role auth.Role) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *service) Login(ctx context.Context, username, password string) (*Admin, error) {
	clean := normalizeUsername(username)
	if clean == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByUsername(ctx, clean)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort
	if err := s.repo.UpdateLastLogin(ctx, a.ID, time.Now().UTC()); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("admin_id", a.ID).Msg("update last login failed")
	}

	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) EnsureAccount(ctx context.Context, username, password, name string, role auth.Role) error {
	clean := normalizeUsername(username)
	if clean == "" {
		return apperror.NewValidation("username", "is required")
	}
	if len(password) < minPasswordLength {
		return apperror.NewValidation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if role != auth.RoleSuperAdmin && role != auth.RoleOperator {
		return ErrInvalidRole
	}

	_, err := s.repo.GetByUsername(ctx, clean)
	if err == nil {
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	a := &Admin{
		Username:     clean,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil
		}
		return err
	}
	log.Ctx(ctx).Info().Str("username", clean).Str("role", string(role)).Msg("admin account created")
	return nil
}
