package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// ListBlocksRequest defines query parameters for listing blocks of one day.
type ListBlocksRequest struct {
	Date    string `form:"date" binding:"required"`
	CourtID string `form:"court_id" binding:"omitempty,uuid"`
}

type CreateBlockRequest struct {
	CourtID   string `json:"court_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=open maintenance event"`
	Note      string `json:"note" binding:"max=255"`
}

type BlockResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Kind      string    `json:"kind"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockResponse(b *block.Block) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		Date:      timeslot.FormatDate(b.Date),
		StartTime: b.Interval.Start.String(),
		EndTime:   b.Interval.End.String(),
		Kind:      string(b.Kind),
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
	}
}
