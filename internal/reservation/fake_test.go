package reservation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// memRepository emulates the store, including the exclusion and unique constraints,
// under a single mutex.
type memRepository struct {
	mu       sync.Mutex
	rows     map[string]*Reservation
	payments map[string]*payment.Payment // By reservation ID

	// overlapBarrier, when set, holds every HasOverlap caller until all have checked.
	overlapBarrier *sync.WaitGroup
}

func newMemRepository() *memRepository {
	return &memRepository{
		rows:     map[string]*Reservation{},
		payments: map[string]*payment.Payment{},
	}
}

// seed stores r as-is and returns its ID.
func (m *memRepository) seed(r Reservation) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.rows[r.ID] = &r
	return r.ID
}

func (m *memRepository) seedPayment(p payment.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ReservationID] = &p
}

func (m *memRepository) overlapsLocked(courtID string, date time.Time, iv timeslot.Interval) bool {
	for _, r := range m.rows {
		if r.CourtID == courtID && r.Date.Equal(date) && r.Status.Occupies() && r.Interval.Overlaps(iv) {
			return true
		}
	}
	return false
}

func (m *memRepository) HasOverlap(_ context.Context, courtID string, date time.Time, iv timeslot.Interval) (bool, error) {
	m.mu.Lock()
	found := m.overlapsLocked(courtID, date, iv)
	m.mu.Unlock()

	if m.overlapBarrier != nil {
		m.overlapBarrier.Done()
		m.overlapBarrier.Wait()
	}
	return found, nil
}

func (m *memRepository) ListOccupying(_ context.Context, date time.Time, courtIDs []string) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, r := range m.rows {
		if !r.Date.Equal(date) || !r.Status.Occupies() {
			continue
		}
		if len(courtIDs) > 0 && !contains(courtIDs, r.CourtID) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepository) CreateWithRenter(_ context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.rows {
		if existing.BookingCode == r.BookingCode {
			return ErrDuplicateCode
		}
	}
	if m.overlapsLocked(r.CourtID, r.Date, r.Interval) {
		return conflictFor(r.CourtID, r.Date, r.Interval)
	}

	now := time.Now()
	r.ID = uuid.NewString()
	r.Renter.ID = uuid.NewString()
	r.Renter.CreatedAt = now
	r.CreatedAt = now
	r.UpdatedAt = now
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRepository) snapshotLocked(r *Reservation) *Reservation {
	cp := *r
	if p, ok := m.payments[r.ID]; ok {
		pc := *p
		cp.Payment = &pc
	}
	return &cp
}

func (m *memRepository) GetByID(_ context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("reservation", id)
	}
	return m.snapshotLocked(r), nil
}

func (m *memRepository) GetByCode(_ context.Context, code string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.BookingCode == code {
			return m.snapshotLocked(r), nil
		}
	}
	return nil, apperror.NewNotFound("reservation", code)
}

func (m *memRepository) List(_ context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, r := range m.rows {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if s := strings.ToLower(filter.Search); s != "" &&
			!strings.Contains(strings.ToLower(r.BookingCode), s) &&
			!strings.Contains(strings.ToLower(r.Renter.Name), s) {
			continue
		}
		out = append(out, m.snapshotLocked(r))
	}
	return out, len(out), nil
}

func (m *memRepository) Stats(_ context.Context, date time.Time) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{Date: date}
	for _, r := range m.rows {
		if r.Date.Equal(date) {
			s.Today++
			if r.Status == StatusConfirmed {
				s.Confirmed++
			}
		}
		if r.Status == StatusPending {
			s.Pending++
		}
	}
	return &s, nil
}

func (m *memRepository) Confirm(_ context.Context, id, adminID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusConfirmed
	if p, ok := m.payments[id]; ok && p.VerificationStatus == payment.StatusPending {
		p.VerificationStatus = payment.StatusValid
		p.VerifiedBy = &adminID
		p.VerifiedAt = &at
	}
	return nil
}

func (m *memRepository) Transition(_ context.Context, id string, from []Status, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return ErrInvalidTransition
	}
	for _, s := range from {
		if r.Status == s {
			r.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// memPayments is the payment store over the same rows as memRepository,
// so reservation status guards the write the way the SQL upsert does.
type memPayments struct {
	m *memRepository
}

func (p memPayments) Upsert(_ context.Context, pay *payment.Payment) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	r, ok := p.m.rows[pay.ReservationID]
	if !ok {
		return apperror.NewNotFound("reservation", pay.ReservationID)
	}
	if err := payment.CheckPayable(string(r.Status)); err != nil {
		return err
	}
	if existing, ok := p.m.payments[pay.ReservationID]; ok && existing.VerificationStatus == payment.StatusValid {
		return payment.ErrAlreadyVerified
	}
	pay.ID = uuid.NewString()
	pay.VerificationStatus = payment.StatusPending
	cp := *pay
	p.m.payments[pay.ReservationID] = &cp
	return nil
}

func (p memPayments) GetByReservation(_ context.Context, reservationID string) (*payment.Payment, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	existing, ok := p.m.payments[reservationID]
	if !ok {
		return nil, apperror.NewNotFound("payment", reservationID)
	}
	cp := *existing
	return &cp, nil
}

type flatTariff int64

func (f flatTariff) HourlyRate(context.Context, string, time.Time) (int64, error) {
	return int64(f), nil
}

func (f flatTariff) Quote(_ context.Context, _ string, _ time.Time, iv timeslot.Interval) (*tariff.Quote, error) {
	return &tariff.Quote{HourlyRate: int64(f), Amount: tariff.AmountFor(int64(f), iv.Minutes())}, nil
}

type fakeCourts map[string]*court.Court

func (f fakeCourts) GetByID(_ context.Context, id string) (*court.Court, error) {
	c, ok := f[id]
	if !ok {
		return nil, apperror.NewNotFound("court", id)
	}
	return c, nil
}

func (f fakeCourts) GetActive(ctx context.Context, id string) (*court.Court, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, court.ErrInactive
	}
	return c, nil
}

func (f fakeCourts) List(context.Context, court.Filter) ([]*court.Court, error) {
	var out []*court.Court
	for _, c := range f {
		out = append(out, c)
	}
	return out, nil
}

type recordedEvent struct {
	Key   string
	Event Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := v.(Event); ok {
		p.events = append(p.events, recordedEvent{Key: key, Event: ev})
	}
	return p.err
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Key
	}
	return out
}
