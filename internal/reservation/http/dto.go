package http

import (
	"time"

	courtHttp "github.com/nekogravitycat/court-reservation-backend/internal/court/http"
	paymentHttp "github.com/nekogravitycat/court-reservation-backend/internal/payment/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type BookReservationRequest struct {
	CourtID     string `json:"court_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	RenterName  string `json:"renter_name"`
	RenterPhone string `json:"renter_phone"`
}

type ReceiptResponse struct {
	ReservationID string `json:"reservation_id"`
	BookingCode   string `json:"booking_code"`
}

type ByCodeRequest struct {
	Code string `uri:"code" binding:"required"`
}

// ListReservationsRequest defines query parameters for the staff listing.
type ListReservationsRequest struct {
	request.ListParams
	Status  string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED REJECTED CANCELLED"`
	CourtID string `form:"court_id" binding:"omitempty,uuid"`
	Date    string `form:"date"`
	Query   string `form:"q" binding:"max=100"`
}

type StatsRequest struct {
	Date string `form:"date"`
}

type RenterResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type ReservationResponse struct {
	ID          string                       `json:"id"`
	BookingCode string                       `json:"booking_code"`
	Court       courtHttp.CourtTag           `json:"court"`
	Renter      RenterResponse               `json:"renter"`
	Date        string                       `json:"date"`
	StartTime   string                       `json:"start_time"`
	EndTime     string                       `json:"end_time"`
	Status      string                       `json:"status"`
	Payment     *paymentHttp.PaymentResponse `json:"payment"`
	CreatedAt   time.Time                    `json:"created_at"`
}

// NewReservationResponse renders r. Proof paths are turned into URLs by proofURL.
func NewReservationResponse(r *reservation.Reservation, proofURL func(string) string) ReservationResponse {
	resp := ReservationResponse{
		ID:          r.ID,
		BookingCode: r.BookingCode,
		Court:       courtHttp.CourtTag{ID: r.CourtID, Name: r.CourtName},
		Renter:      RenterResponse{Name: r.Renter.Name, Phone: r.Renter.Phone},
		Date:        timeslot.FormatDate(r.Date),
		StartTime:   r.Interval.Start.String(),
		EndTime:     r.Interval.End.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	if r.Payment != nil {
		p := paymentHttp.NewPaymentResponse(r.Payment, proofURL)
		resp.Payment = &p
	}
	return resp
}

type StatsResponse struct {
	Date      string `json:"date"`
	Today     int    `json:"today"`
	Pending   int    `json:"pending"`
	Confirmed int    `json:"confirmed"`
}

func NewStatsResponse(s *reservation.Stats) StatsResponse {
	return StatsResponse{
		Date:      timeslot.FormatDate(s.Date),
		Today:     s.Today,
		Pending:   s.Pending,
		Confirmed: s.Confirmed,
	}
}
