package http

import (
	"github.com/nekogravitycat/court-reservation-backend/internal/availability"
	courtHttp "github.com/nekogravitycat/court-reservation-backend/internal/court/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// DayRequest defines query parameters of the availability grid.
type DayRequest struct {
	Date    string `form:"date" binding:"required"`
	CourtID string `form:"court_id" binding:"omitempty,uuid"`
}

type SlotRequest struct {
	CourtID string `form:"court_id" binding:"required,uuid"`
	Date    string `form:"date" binding:"required"`
	Time    string `form:"time" binding:"required"`
}

type CellResponse struct {
	CourtID string `json:"court_id"`
	Status  string `json:"status"`
}

type RowResponse struct {
	Time  string         `json:"time"`
	Cells []CellResponse `json:"cells"`
}

type DayResponse struct {
	Date   string               `json:"date"`
	Courts []courtHttp.CourtTag `json:"courts"`
	Rows   []RowResponse        `json:"rows"`
}

func NewDayResponse(d *availability.Day) DayResponse {
	courts := make([]courtHttp.CourtTag, len(d.Courts))
	for i, c := range d.Courts {
		courts[i] = courtHttp.CourtTag{ID: c.ID, Name: c.Name, Sport: string(c.Sport)}
	}

	rows := make([]RowResponse, len(d.Rows))
	for i, r := range d.Rows {
		cells := make([]CellResponse, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = CellResponse{CourtID: c.CourtID, Status: string(c.Status)}
		}
		rows[i] = RowResponse{Time: r.Slot.String(), Cells: cells}
	}

	return DayResponse{
		Date:   timeslot.FormatDate(d.Date),
		Courts: courts,
		Rows:   rows,
	}
}

type SlotResponse struct {
	CourtID string `json:"court_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}
