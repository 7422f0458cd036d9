package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/admin"
)

// LoginRequest is the payload for POST /v1/admin/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse carries the bearer token for staff endpoints.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"` // Seconds
	Admin       AdminResponse `json:"admin"`
}

func NewAdminResponse(a *admin.Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Username:    a.Username,
		Name:        a.Name,
		Role:        string(a.Role),
		LastLoginAt: a.LastLoginAt,
	}
}
