package block

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// Kind classifies an administrative block.
type Kind string

const (
	// KindOpen marks a period as explicitly open. It is informational and never occupies time.
	KindOpen        Kind = "open"
	KindMaintenance Kind = "maintenance"
	KindEvent       Kind = "event"
)

// Occupies reports whether a block of this kind removes availability.
func (k Kind) Occupies() bool {
	return k == KindMaintenance || k == KindEvent
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindOpen || k == KindMaintenance || k == KindEvent
}

// Block is administrative unavailability of a court, independent of reservations.
type Block struct {
	ID        string
	CourtID   string
	Date      time.Time
	Interval  timeslot.Interval
	Kind      Kind
	Note      *string
	CreatedBy *string // Admin ID
	CreatedAt time.Time
}

// Filter defines parameters for listing blocks.
type Filter struct {
	Date     time.Time
	CourtIDs []string
}
