package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation-backend/internal/availability"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Day renders the slot grid of a date for all active courts or a single one.
func (h *Handler) Day(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		response.Error(c, apperror.NewValidation("date", err.Error()))
		return
	}

	day, err := h.service.Day(c.Request.Context(), date, req.CourtID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayResponse(day))
}

func (h *Handler) Slot(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		response.Error(c, apperror.NewValidation("date", err.Error()))
		return
	}
	slot, err := timeslot.ParseClock(req.Time)
	if err != nil {
		response.Error(c, apperror.NewValidation("time", err.Error()))
		return
	}

	status, err := h.service.SlotStatus(c.Request.Context(), req.CourtID, date, slot)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotResponse{
		CourtID: req.CourtID,
		Date:    timeslot.FormatDate(date),
		Time:    slot.String(),
		Status:  string(status),
	})
}
