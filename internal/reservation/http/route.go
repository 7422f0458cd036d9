package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public booking endpoints on public and the desk endpoints on staff.
func RegisterRoutes(public *gin.RouterGroup, staff *gin.RouterGroup, h *Handler) {
	booking := public.Group("/reservations")
	{
		booking.POST("", h.Book)
		booking.GET("/code/:code", h.GetByCode)
	}

	desk := staff.Group("/reservations")
	{
		desk.GET("", h.List)
		desk.GET("/stats", h.Stats)
		desk.POST("/:id/confirm", h.Confirm)
		desk.POST("/:id/reject", h.Reject)
		desk.POST("/:id/cancel", h.Cancel)
	}
}
