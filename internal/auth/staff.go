package auth

import (
	"net/http"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

// Role is a staff role as stored on the admin account.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleOperator   Role = "operator"
)

// ErrStaffRequired is returned by operations reserved to facility staff.
var ErrStaffRequired = apperror.New(http.StatusForbidden, "staff authorization required")

// Staff is the capability handed to staff-only operations.
// It is built from validated token claims at the transport edge and passed
// explicitly; services never look it up from ambient state.
type Staff struct {
	AdminID string
	Role    Role
}

// StaffFromClaims converts validated claims into a capability.
func StaffFromClaims(c *Claims) Staff {
	if c == nil {
		return Staff{}
	}
	return Staff{AdminID: c.AdminID, Role: c.Role}
}

// IsAuthorizedStaff reports whether the bearer may confirm, reject or cancel reservations.
func (s Staff) IsAuthorizedStaff() bool {
	if s.AdminID == "" {
		return false
	}
	return s.Role == RoleSuperAdmin || s.Role == RoleOperator
}

// Require returns ErrStaffRequired unless the capability is valid.
func (s Staff) Require() error {
	if !s.IsAuthorizedStaff() {
		return ErrStaffRequired
	}
	return nil
}
