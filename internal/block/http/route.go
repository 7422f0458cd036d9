package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers block management under the staff group.
func RegisterRoutes(staff *gin.RouterGroup, h *Handler) {
	group := staff.Group("/blocks")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
	}
}
