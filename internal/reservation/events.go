package reservation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// Routing keys of reservation lifecycle events.
const (
	EventCreated   = "reservation.created"
	EventConfirmed = "reservation.confirmed"
	EventRejected  = "reservation.rejected"
	EventCancelled = "reservation.cancelled"
)

// Publisher is satisfied by *mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Event is the message body of every lifecycle event.
type Event struct {
	ReservationID string    `json:"reservation_id"`
	BookingCode   string    `json:"booking_code"`
	CourtID       string    `json:"court_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        Status    `json:"status"`
	ActorID       string    `json:"actor_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newEvent(r *Reservation, status Status, actorID string, at time.Time) Event {
	return Event{
		ReservationID: r.ID,
		BookingCode:   r.BookingCode,
		CourtID:       r.CourtID,
		Date:          timeslot.FormatDate(r.Date),
		StartTime:     r.Interval.Start.String(),
		EndTime:       r.Interval.End.String(),
		Status:        status,
		ActorID:       actorID,
		OccurredAt:    at,
	}
}

// publish is best effort: the reservation is already committed, so failures are only logged.
func (s *service) publish(ctx context.Context, key string, ev Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, key, ev); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("event", key).
			Str("booking_code", ev.BookingCode).
			Msg("publish reservation event failed")
	}
}
