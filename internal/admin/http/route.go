package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts login on the open admin group and the profile on the staff group.
func RegisterRoutes(open *gin.RouterGroup, staff *gin.RouterGroup, h *Handler) {
	open.POST("/login", h.Login)
	staff.GET("/me", h.Me)
}
