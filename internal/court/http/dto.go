package http

import (
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
)

// ListCourtsRequest defines query parameters for listing courts.
type ListCourtsRequest struct {
	Sport string `form:"sport" binding:"omitempty,oneof=futsal badminton basketball volleyball"`
}

// CourtTag is the compact form embedded in other responses.
type CourtTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport,omitempty"`
}

type CourtResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Sport    string  `json:"sport"`
	Location *string `json:"location"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:       c.ID,
		Name:     c.Name,
		Sport:    string(c.Sport),
		Location: c.Location,
	}
}
