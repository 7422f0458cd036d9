package app

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/court-reservation-backend/internal/reservation/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

func TestConcurrentBookingSameSlot(t *testing.T) {
	requireDB(t)
	clearTables(t)

	courtID := seedCourt(t, "Court A", 150000)
	date := timeslot.FormatDate(time.Now().UTC().AddDate(0, 0, 7))

	const racers = 2
	codes := make([]int, racers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			w := executeRequest("POST", "/v1/reservations", reservationHttp.BookReservationRequest{
				CourtID: courtID, Date: date, StartTime: "10:00", EndTime: "12:00",
				RenterName: "Racer", RenterPhone: "081234567890",
			}, "")
			codes[i] = w.Code
		}(i)
	}
	close(start)
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)

	var count int
	require.NoError(t, testPool.QueryRow(context.Background(),
		`SELECT count(*) FROM public.reservations WHERE court_id = $1`, courtID).Scan(&count))
	assert.Equal(t, 1, count)
}

// The service checks for overlaps before inserting. These cases skip that check
// and hit the table constraints directly.
func TestReservationConstraints(t *testing.T) {
	requireDB(t)
	clearTables(t)

	ctx := context.Background()
	repo := reservation.NewPgxRepository(testPool)
	courtID := seedCourt(t, "Court A", 150000)
	date, err := timeslot.ParseDate(timeslot.FormatDate(time.Now().UTC().AddDate(0, 0, 7)))
	require.NoError(t, err)

	newRow := func(code, start, end string) *reservation.Reservation {
		return &reservation.Reservation{
			CourtID:     courtID,
			Renter:      reservation.Renter{Name: "Rina", Phone: "081234567890"},
			Date:        date,
			Interval:    timeslot.Interval{Start: timeslot.MustClock(start), End: timeslot.MustClock(end)},
			Status:      reservation.StatusPending,
			BookingCode: code,
		}
	}

	t.Run("Overlap Is A Conflict", func(t *testing.T) {
		require.NoError(t, repo.CreateWithRenter(ctx, newRow("CONS0001", "10:00", "12:00")))

		err := repo.CreateWithRenter(ctx, newRow("CONS0002", "11:00", "13:00"))
		var conflict *apperror.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "11:00", conflict.StartTime)
	})

	t.Run("Concurrent Overlap Admits One", func(t *testing.T) {
		errs := make([]error, 2)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i, code := range []string{"CONS0003", "CONS0004"} {
			wg.Add(1)
			go func(i int, code string) {
				defer wg.Done()
				<-start
				errs[i] = repo.CreateWithRenter(ctx, newRow(code, "15:00", "16:00"))
			}(i, code)
		}
		close(start)
		wg.Wait()

		var conflicts, created int
		for _, err := range errs {
			var conflict *apperror.ConflictError
			switch {
			case err == nil:
				created++
			case assert.ErrorAs(t, err, &conflict):
				conflicts++
			}
		}
		assert.Equal(t, 1, created)
		assert.Equal(t, 1, conflicts)
	})

	t.Run("Taken Code Is Reported For Retry", func(t *testing.T) {
		err := repo.CreateWithRenter(ctx, newRow("CONS0001", "18:00", "19:00"))
		assert.ErrorIs(t, err, reservation.ErrDuplicateCode)

		// The failed insert rolled back its renter together with the reservation.
		var renters int
		require.NoError(t, testPool.QueryRow(ctx, `SELECT count(*) FROM public.renters`).Scan(&renters))
		var rows int
		require.NoError(t, testPool.QueryRow(ctx, `SELECT count(*) FROM public.reservations`).Scan(&rows))
		assert.Equal(t, rows, renters)
	})
}
