package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
)

const proofField = "proof"

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

// AttachProof accepts a multipart upload with the proof file and an optional method.
func (h *Handler) AttachProof(c *gin.Context) {
	var req AttachProofRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking code", "field": "booking_code"})
		return
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid method", "field": "method"})
		return
	}

	fileHeader, err := c.FormFile(proofField)
	if err != nil {
		response.Error(c, payment.ErrProofRequired)
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, payment.ErrProofRequired)
		return
	}
	defer src.Close()

	p, err := h.service.AttachProof(c.Request.Context(), payment.AttachRequest{
		BookingCode: req.Code,
		Method:      payment.Method(req.Method),
		Content:     src,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p, h.service.ProofURL))
}

// ServeProof streams a stored proof to staff.
func (h *Handler) ServeProof(c *gin.Context) {
	stream, contentType, err := h.service.OpenProof(c.Request.Context(), auth.GetStaff(c), c.Param("path"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("proof stream interrupted")
	}
}
