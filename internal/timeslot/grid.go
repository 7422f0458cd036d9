package timeslot

import "fmt"

// Grid describes the bookable day: slot labels from Open to Close (inclusive)
// every Step minutes. With 06:00, 20:00 and 60 this yields 15 labels.
type Grid struct {
	Open  Clock
	Close Clock
	Step  int
}

// DefaultGrid is the facility's 06:00–20:00 hourly grid.
var DefaultGrid = Grid{Open: 6 * 60, Close: 20 * 60, Step: 60}

// NewGrid builds a grid from whole hours and a step in minutes.
func NewGrid(openHour, closeHour, stepMinutes int) (Grid, error) {
	g := Grid{Open: Clock(openHour * 60), Close: Clock(closeHour * 60), Step: stepMinutes}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate checks the grid bounds.
func (g Grid) Validate() error {
	if g.Step <= 0 {
		return fmt.Errorf("slot step must be positive, got %d", g.Step)
	}
	if !g.Open.Valid() || !g.Close.Valid() || g.Open >= g.Close {
		return fmt.Errorf("invalid slot hours %s-%s", g.Open, g.Close)
	}
	return nil
}

// Slots returns the ordered slot start labels.
func (g Grid) Slots() []Clock {
	var out []Clock
	for c := g.Open; c <= g.Close && c < MinutesPerDay; c += Clock(g.Step) {
		out = append(out, c)
	}
	return out
}

// Span is the bookable range. The last label starts a slot, so the span ends one step after it.
func (g Grid) Span() Interval {
	last := g.Open
	for _, c := range g.Slots() {
		last = c
	}
	end := last + Clock(g.Step)
	if end > MinutesPerDay {
		end = MinutesPerDay
	}
	return Interval{Start: g.Open, End: end}
}

// Contains reports whether iv can be booked on this grid.
func (g Grid) Contains(iv Interval) bool {
	return iv.Within(g.Span())
}
