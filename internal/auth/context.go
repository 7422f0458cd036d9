package auth

import "github.com/gin-gonic/gin"

const staffKey = "staff"

// GetStaff returns the authenticated staff capability, or the zero value.
func GetStaff(c *gin.Context) Staff {
	if v, ok := c.Get(staffKey); ok {
		if s, ok := v.(Staff); ok {
			return s
		}
	}
	return Staff{}
}

// GetAdminID returns the authenticated admin's ID or empty string.
func GetAdminID(c *gin.Context) string {
	return GetStaff(c).AdminID
}
