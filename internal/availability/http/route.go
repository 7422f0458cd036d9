package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/availability")
	{
		group.GET("", h.Day)
		group.GET("/slot", h.Slot)
	}
}
