package admin

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
)

// Admin is a facility staff account.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         auth.Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
