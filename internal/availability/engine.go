// Package availability classifies every slot of a court's day from the
// intervals that occupy it. Nothing is cached: each query recomputes the
// grid from the store.
package availability

import (
	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type SlotStatus string

const (
	StatusAvailable   SlotStatus = "AVAILABLE"
	StatusBooked      SlotStatus = "BOOKED"
	StatusMaintenance SlotStatus = "MAINTENANCE"
	StatusEvent       SlotStatus = "EVENT"
)

// BlockSpan is an administrative block reduced to what classification needs.
type BlockSpan struct {
	Interval timeslot.Interval
	Kind     block.Kind
}

// Occupancy is the set of occupying intervals of one court on one date.
// Reservations must already be limited to PENDING and CONFIRMED ones.
type Occupancy struct {
	Reservations []timeslot.Interval
	Blocks       []BlockSpan
}

// ComputeSlotStatus classifies the instant slot.
//
// A MAINTENANCE or EVENT block covering the slot wins over any reservation.
// When several blocks cover it, the one starting first decides, and
// MAINTENANCE wins a tie. OPEN blocks never occupy time.
func ComputeSlotStatus(occ Occupancy, slot timeslot.Clock) SlotStatus {
	var winner *BlockSpan
	for i := range occ.Blocks {
		b := &occ.Blocks[i]
		if !b.Kind.Occupies() || !b.Interval.Covers(slot) {
			continue
		}
		if winner == nil || b.Interval.Start < winner.Interval.Start ||
			(b.Interval.Start == winner.Interval.Start && b.Kind == block.KindMaintenance) {
			winner = b
		}
	}
	if winner != nil {
		if winner.Kind == block.KindMaintenance {
			return StatusMaintenance
		}
		return StatusEvent
	}

	for _, iv := range occ.Reservations {
		if iv.Covers(slot) {
			return StatusBooked
		}
	}
	return StatusAvailable
}
