package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "06:00", want: 360},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "9:30", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon!", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestClockComparisonIsNumeric(t *testing.T) {
	// "9:00" > "10:00" lexically; minutes compare correctly.
	assert.Less(t, MustClock("09:00"), MustClock("10:00"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-02-08", FormatDate(d))

	_, err = ParseDate("08/02/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	local := time.Date(2026, 2, 8, 23, 30, 0, 0, jakarta)
	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), DateOf(local))
}

func TestOverlaps(t *testing.T) {
	iv := func(a, b string) Interval {
		out, err := ParseInterval(a, b)
		require.NoError(t, err)
		return out
	}

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "partial overlap", a: iv("09:00", "11:00"), b: iv("10:00", "12:00"), want: true},
		{name: "containment", a: iv("08:00", "12:00"), b: iv("09:00", "10:00"), want: true},
		{name: "identical", a: iv("10:00", "11:00"), b: iv("10:00", "11:00"), want: true},
		{name: "touching end to start", a: iv("09:00", "11:00"), b: iv("11:00", "12:00"), want: false},
		{name: "disjoint", a: iv("06:00", "07:00"), b: iv("15:00", "16:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalCovers(t *testing.T) {
	iv := Interval{Start: MustClock("09:00"), End: MustClock("11:00")}
	assert.True(t, iv.Covers(MustClock("09:00")))
	assert.True(t, iv.Covers(MustClock("10:59")))
	assert.False(t, iv.Covers(MustClock("11:00")))
	assert.False(t, iv.Covers(MustClock("08:59")))
	assert.Equal(t, 120, iv.Minutes())
}

func TestParseIntervalRejectsEmptyRange(t *testing.T) {
	_, err := ParseInterval("12:00", "12:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
	_, err = ParseInterval("12:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
	_, err = ParseInterval("12:00", "1pm")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestDefaultGrid(t *testing.T) {
	slots := DefaultGrid.Slots()
	require.Len(t, slots, 15)
	assert.Equal(t, "06:00", slots[0].String())
	assert.Equal(t, "20:00", slots[len(slots)-1].String())

	span := DefaultGrid.Span()
	assert.Equal(t, "06:00-21:00", span.String())
	assert.True(t, DefaultGrid.Contains(Interval{Start: MustClock("20:00"), End: MustClock("21:00")}))
	assert.False(t, DefaultGrid.Contains(Interval{Start: MustClock("05:00"), End: MustClock("07:00")}))
}

func TestNewGridValidation(t *testing.T) {
	g, err := NewGrid(8, 10, 30)
	require.NoError(t, err)
	assert.Len(t, g.Slots(), 5)

	_, err = NewGrid(10, 8, 60)
	assert.Error(t, err)
	_, err = NewGrid(6, 20, 0)
	assert.Error(t, err)
}
