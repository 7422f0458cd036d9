package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type Handler struct {
	service tariff.Service
}

func NewHandler(service tariff.Service) *Handler {
	return &Handler{service: service}
}

// Quote prices an interval with the tariff effective on the requested date.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		response.Error(c, apperror.NewValidation("date", err.Error()))
		return
	}
	start, err := timeslot.ParseClock(req.StartTime)
	if err != nil {
		response.Error(c, apperror.NewValidation("start_time", err.Error()))
		return
	}
	end, err := timeslot.ParseClock(req.EndTime)
	if err != nil {
		response.Error(c, apperror.NewValidation("end_time", err.Error()))
		return
	}
	iv, err := timeslot.NewInterval(start, end)
	if err != nil {
		response.Error(c, apperror.NewValidation("end_time", err.Error()))
		return
	}

	q, err := h.service.Quote(c.Request.Context(), req.CourtID, date, iv)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
