package court

import (
	"time"
)

// Sport is the kind of game a court is set up for.
type Sport string

const (
	SportFutsal     Sport = "futsal"
	SportBadminton  Sport = "badminton"
	SportBasketball Sport = "basketball"
	SportVolleyball Sport = "volleyball"
)

// ValidSports lists every supported sport.
var ValidSports = []Sport{SportFutsal, SportBadminton, SportBasketball, SportVolleyball}

// Court represents a bookable court in the facility.
// Courts are provisioned by staff outside this service and are read-only here.
type Court struct {
	ID        string
	Name      string
	Sport     Sport
	Location  *string // Free-form position inside the facility, e.g. "Hall B"
	Active    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	ActiveOnly bool
	Sport      Sport
	IDs        []string
}
