package timeslot

// Interval is the half-open range [Start, End).
type Interval struct {
	Start Clock
	End   Clock
}

// NewInterval builds an interval and checks Start < End.
func NewInterval(start, end Clock) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// ParseInterval parses two "HH:MM" values into an interval.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

// Valid reports whether the interval is non-empty and within a day.
func (iv Interval) Valid() bool {
	return iv.Start.Valid() && iv.End.Valid() && iv.Start < iv.End
}

// Minutes is the length of the interval.
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

// Overlaps is the strict half-open overlap test. Touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Covers reports whether the instant c lies in [Start, End).
func (iv Interval) Covers(c Clock) bool {
	return iv.Start <= c && c < iv.End
}

// Within reports whether iv lies entirely inside outer.
func (iv Interval) Within(outer Interval) bool {
	return outer.Start <= iv.Start && iv.End <= outer.End
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Overlaps is the free-function form of Interval.Overlaps.
func Overlaps(a, b Interval) bool {
	return a.Overlaps(b)
}
