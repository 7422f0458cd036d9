package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public upload and the staff proof viewer.
// public must be the rate limited reservation group.
func RegisterRoutes(public *gin.RouterGroup, staff *gin.RouterGroup, h *Handler) {
	public.POST("/reservations/code/:code/payment", h.AttachProof)
	staff.GET("/proofs/*path", h.ServeProof)
}
