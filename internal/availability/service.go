package availability

import (
	"context"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/block"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// Reservations is the read side of the reservation store used by the engine.
type Reservations interface {
	ListOccupying(ctx context.Context, date time.Time, courtIDs []string) ([]*reservation.Reservation, error)
}

// Blocks is the read side of the block store used by the engine.
type Blocks interface {
	ListForDate(ctx context.Context, date time.Time, courtIDs ...string) ([]*block.Block, error)
}

// Cell is the status of one court at one slot.
type Cell struct {
	CourtID string
	Status  SlotStatus
}

// Row holds the cells of every court for one slot label, in court order.
type Row struct {
	Slot  timeslot.Clock
	Cells []Cell
}

// Day is the availability grid of a date.
type Day struct {
	Date   time.Time
	Courts []*court.Court
	Rows   []Row
}

type Service interface {
	// Day computes the grid for all active courts, or only courtID when it is not empty.
	Day(ctx context.Context, date time.Time, courtID string) (*Day, error)
	// SlotStatus classifies a single slot of one court.
	SlotStatus(ctx context.Context, courtID string, date time.Time, slot timeslot.Clock) (SlotStatus, error)
}

type service struct {
	courts       court.Service
	reservations Reservations
	blocks       Blocks
	grid         timeslot.Grid
}

func NewService(courts court.Service, reservations Reservations, blocks Blocks, grid timeslot.Grid) Service {
	return &service{
		courts:       courts,
		reservations: reservations,
		blocks:       blocks,
		grid:         grid,
	}
}

func (s *service) Day(ctx context.Context, date time.Time, courtID string) (*Day, error) {
	var courts []*court.Court
	if courtID != "" {
		c, err := s.courts.GetActive(ctx, courtID)
		if err != nil {
			return nil, err
		}
		courts = []*court.Court{c}
	} else {
		list, err := s.courts.List(ctx, court.Filter{ActiveOnly: true})
		if err != nil {
			return nil, err
		}
		courts = list
	}

	ids := make([]string, len(courts))
	for i, c := range courts {
		ids[i] = c.ID
	}

	occ, err := s.occupancy(ctx, date, ids)
	if err != nil {
		return nil, err
	}

	slots := s.grid.Slots()
	day := &Day{Date: date, Courts: courts, Rows: make([]Row, len(slots))}
	for i, slot := range slots {
		row := Row{Slot: slot, Cells: make([]Cell, len(courts))}
		for j, c := range courts {
			row.Cells[j] = Cell{CourtID: c.ID, Status: ComputeSlotStatus(occ[c.ID], slot)}
		}
		day.Rows[i] = row
	}
	return day, nil
}

func (s *service) SlotStatus(ctx context.Context, courtID string, date time.Time, slot timeslot.Clock) (SlotStatus, error) {
	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		return "", err
	}

	occ, err := s.occupancy(ctx, date, []string{courtID})
	if err != nil {
		return "", err
	}
	return ComputeSlotStatus(occ[courtID], slot), nil
}

// occupancy loads and groups the occupying intervals of the given courts by court ID.
func (s *service) occupancy(ctx context.Context, date time.Time, courtIDs []string) (map[string]Occupancy, error) {
	out := make(map[string]Occupancy, len(courtIDs))
	if len(courtIDs) == 0 {
		return out, nil
	}

	reservations, err := s.reservations.ListOccupying(ctx, date, courtIDs)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ListForDate(ctx, date, courtIDs...)
	if err != nil {
		return nil, err
	}

	for _, r := range reservations {
		if !r.Status.Occupies() {
			continue
		}
		occ := out[r.CourtID]
		occ.Reservations = append(occ.Reservations, r.Interval)
		out[r.CourtID] = occ
	}
	for _, b := range blocks {
		occ := out[b.CourtID]
		occ.Blocks = append(occ.Blocks, BlockSpan{Interval: b.Interval, Kind: b.Kind})
		out[b.CourtID] = occ
	}
	return out, nil
}
