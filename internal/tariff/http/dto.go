package http

import (
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// QuoteRequest defines query parameters for pricing a booking before it is made.
type QuoteRequest struct {
	CourtID   string `form:"court_id" binding:"required,uuid"`
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

type QuoteResponse struct {
	CourtID    string `json:"court_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	HourlyRate int64  `json:"hourly_rate"`
	Amount     int64  `json:"amount"`
}

func NewQuoteResponse(q *tariff.Quote) QuoteResponse {
	return QuoteResponse{
		CourtID:    q.CourtID,
		Date:       timeslot.FormatDate(q.Date),
		StartTime:  q.Interval.Start.String(),
		EndTime:    q.Interval.End.String(),
		HourlyRate: q.HourlyRate,
		Amount:     q.Amount,
	}
}
