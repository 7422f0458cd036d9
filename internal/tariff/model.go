package tariff

import (
	"time"
)

// Period is the hourly rate applied to a court between two dates.
// At most one period is effective for a court on any given date.
type Period struct {
	ID             string
	CourtID        string
	HourlyRate     int64 // Whole currency units (rupiah)
	EffectiveStart time.Time
	EffectiveEnd   *time.Time // nil means open-ended
	CreatedAt      time.Time
}

// AmountFor prices a booking of the given length in minutes.
func AmountFor(hourlyRate int64, minutes int) int64 {
	return hourlyRate * int64(minutes) / 60
}
