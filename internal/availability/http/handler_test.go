package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/availability"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Day(ctx context.Context, date time.Time, courtID string) (*availability.Day, error) {
	args := m.Called(ctx, date, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Day), args.Error(1)
}

func (m *MockService) SlotStatus(ctx context.Context, courtID string, date time.Time, slot timeslot.Clock) (availability.SlotStatus, error) {
	args := m.Called(ctx, courtID, date, slot)
	return args.Get(0).(availability.SlotStatus), args.Error(1)
}

const courtID = "0b6f5c7e-1d2a-4e3f-8a9b-c0d1e2f3a4b5"

var playDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Day(t *testing.T) {
	svc := new(MockService)
	svc.On("Day", mock.Anything, playDate, "").Return(&availability.Day{
		Date:   playDate,
		Courts: []*court.Court{{ID: courtID, Name: "Court A", Sport: court.SportBadminton}},
		Rows: []availability.Row{
			{Slot: timeslot.MustClock("06:00"), Cells: []availability.Cell{{CourtID: courtID, Status: availability.StatusAvailable}}},
			{Slot: timeslot.MustClock("07:00"), Cells: []availability.Cell{{CourtID: courtID, Status: availability.StatusBooked}}},
		},
	}, nil)
	r := newTestRouter(svc)

	w := get(r, "/v1/availability?date=2025-03-10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp DayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	require.Len(t, resp.Courts, 1)
	assert.Equal(t, "badminton", resp.Courts[0].Sport)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "07:00", resp.Rows[1].Time)
	assert.Equal(t, "BOOKED", resp.Rows[1].Cells[0].Status)
}

func TestHandler_DayErrors(t *testing.T) {
	svc := new(MockService)
	svc.On("Day", mock.Anything, playDate, courtID).Return(nil, apperror.NewNotFound("court", courtID))
	r := newTestRouter(svc)

	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/availability").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/availability?date=2025-03-10&court_id=nope").Code)

	w := get(r, "/v1/availability?date=2025/03/10")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"date"`)

	assert.Equal(t, http.StatusNotFound, get(r, "/v1/availability?date=2025-03-10&court_id="+courtID).Code)
}

func TestHandler_Slot(t *testing.T) {
	svc := new(MockService)
	svc.On("SlotStatus", mock.Anything, courtID, playDate, timeslot.MustClock("14:00")).Return(availability.StatusMaintenance, nil)
	r := newTestRouter(svc)

	w := get(r, "/v1/availability/slot?court_id="+courtID+"&date=2025-03-10&time=14:00")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, SlotResponse{CourtID: courtID, Date: "2025-03-10", Time: "14:00", Status: "MAINTENANCE"}, resp)

	w = get(r, "/v1/availability/slot?court_id="+courtID+"&date=2025-03-10&time=2pm")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"time"`)
}
