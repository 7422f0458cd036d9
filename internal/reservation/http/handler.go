package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type Handler struct {
	service  reservation.Service
	proofURL func(string) string
}

func NewHandler(service reservation.Service, proofURL func(string) string) *Handler {
	return &Handler{
		service:  service,
		proofURL: proofURL,
	}
}

func (h *Handler) Book(c *gin.Context) {
	var body BookReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	receipt, err := h.service.Book(c.Request.Context(), reservation.BookRequest{
		CourtID:     body.CourtID,
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		RenterName:  body.RenterName,
		RenterPhone: body.RenterPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ReceiptResponse{
		ReservationID: receipt.ReservationID,
		BookingCode:   receipt.BookingCode,
	})
}

// GetByCode is the public status lookup. The renter's phone is not disclosed.
func (h *Handler) GetByCode(c *gin.Context) {
	var req ByCodeRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := h.service.GetByCode(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := NewReservationResponse(r, h.proofURL)
	resp.Renter.Phone = ""
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := reservation.Filter{
		Status:   reservation.Status(req.Status),
		CourtID:  req.CourtID,
		Search:   req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Date != "" {
		date, err := timeslot.ParseDate(req.Date)
		if err != nil {
			response.Error(c, apperror.NewValidation("date", err.Error()))
			return
		}
		filter.Date = &date
	}

	items, total, err := h.service.List(c.Request.Context(), auth.GetStaff(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ReservationResponse, len(items))
	for i, r := range items {
		out[i] = NewReservationResponse(r, h.proofURL)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(out, req.Page, req.PageSize, total))
}

func (h *Handler) Stats(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		d, err := timeslot.ParseDate(req.Date)
		if err != nil {
			response.Error(c, apperror.NewValidation("date", err.Error()))
			return
		}
		date = d
	}

	stats, err := h.service.Stats(c.Request.Context(), auth.GetStaff(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStatsResponse(stats))
}

type staffAction func(ctx *gin.Context, staff auth.Staff, id string) (*reservation.Reservation, error)

func (h *Handler) act(c *gin.Context, action staffAction) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := action(c, auth.GetStaff(c), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r, h.proofURL))
}

func (h *Handler) Confirm(c *gin.Context) {
	h.act(c, func(c *gin.Context, staff auth.Staff, id string) (*reservation.Reservation, error) {
		return h.service.Confirm(c.Request.Context(), staff, id)
	})
}

func (h *Handler) Reject(c *gin.Context) {
	h.act(c, func(c *gin.Context, staff auth.Staff, id string) (*reservation.Reservation, error) {
		return h.service.Reject(c.Request.Context(), staff, id)
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	h.act(c, func(c *gin.Context, staff auth.Staff, id string) (*reservation.Reservation, error) {
		return h.service.Cancel(c.Request.Context(), staff, id)
	})
}
