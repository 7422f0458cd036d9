package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

func iv(start, end string) timeslot.Interval {
	return timeslot.Interval{Start: timeslot.MustClock(start), End: timeslot.MustClock(end)}
}

func at(s string) timeslot.Clock {
	return timeslot.MustClock(s)
}

func TestComputeSlotStatus(t *testing.T) {
	tests := []struct {
		name string
		occ  Occupancy
		slot string
		want SlotStatus
	}{
		{"empty day", Occupancy{}, "10:00", StatusAvailable},
		{"reservation covers start", Occupancy{Reservations: []timeslot.Interval{iv("09:00", "11:00")}}, "09:00", StatusBooked},
		{"reservation covers middle", Occupancy{Reservations: []timeslot.Interval{iv("09:00", "11:00")}}, "10:00", StatusBooked},
		{"reservation end is free", Occupancy{Reservations: []timeslot.Interval{iv("09:00", "11:00")}}, "11:00", StatusAvailable},
		{"half hour booking marks its label", Occupancy{Reservations: []timeslot.Interval{iv("09:30", "10:30")}}, "10:00", StatusBooked},
		{"maintenance block", Occupancy{Blocks: []BlockSpan{{Interval: iv("14:00", "16:00"), Kind: block.KindMaintenance}}}, "14:00", StatusMaintenance},
		{"event block", Occupancy{Blocks: []BlockSpan{{Interval: iv("14:00", "16:00"), Kind: block.KindEvent}}}, "15:00", StatusEvent},
		{"open block is informational", Occupancy{Blocks: []BlockSpan{{Interval: iv("06:00", "21:00"), Kind: block.KindOpen}}}, "07:00", StatusAvailable},
		{
			"block wins over reservation",
			Occupancy{
				Reservations: []timeslot.Interval{iv("13:00", "15:00")},
				Blocks:       []BlockSpan{{Interval: iv("14:00", "15:00"), Kind: block.KindEvent}},
			},
			"14:00", StatusEvent,
		},
		{
			"open block does not hide reservation",
			Occupancy{
				Reservations: []timeslot.Interval{iv("13:00", "15:00")},
				Blocks:       []BlockSpan{{Interval: iv("13:00", "15:00"), Kind: block.KindOpen}},
			},
			"13:00", StatusBooked,
		},
		{
			"earliest block decides",
			Occupancy{Blocks: []BlockSpan{
				{Interval: iv("12:00", "16:00"), Kind: block.KindEvent},
				{Interval: iv("10:00", "15:00"), Kind: block.KindMaintenance},
			}},
			"13:00", StatusMaintenance,
		},
		{
			"maintenance wins a tie",
			Occupancy{Blocks: []BlockSpan{
				{Interval: iv("10:00", "12:00"), Kind: block.KindEvent},
				{Interval: iv("10:00", "12:00"), Kind: block.KindMaintenance},
			}},
			"11:00", StatusMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSlotStatus(tt.occ, at(tt.slot)))
		})
	}
}

func TestComputeSlotStatusIsPure(t *testing.T) {
	occ := Occupancy{
		Reservations: []timeslot.Interval{iv("08:00", "10:00"), iv("17:00", "19:00")},
		Blocks: []BlockSpan{
			{Interval: iv("12:00", "13:00"), Kind: block.KindMaintenance},
			{Interval: iv("18:00", "20:00"), Kind: block.KindEvent},
		},
	}
	reversed := Occupancy{
		Reservations: []timeslot.Interval{occ.Reservations[1], occ.Reservations[0]},
		Blocks:       []BlockSpan{occ.Blocks[1], occ.Blocks[0]},
	}

	for _, slot := range timeslot.DefaultGrid.Slots() {
		first := ComputeSlotStatus(occ, slot)
		assert.Equal(t, first, ComputeSlotStatus(occ, slot), "slot %s", slot)
		assert.Equal(t, first, ComputeSlotStatus(reversed, slot), "slot %s depends on input order", slot)
	}
}
