package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomly/models"
	"roomly/services/availability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailabilityService struct {
	daySlots *models.DaySlotsResponse
	calendar *models.CalendarResponse
	err      error
}

func (s *stubAvailabilityService) DaySlots(ctx context.Context, roomID, date string, now time.Time) (*models.DaySlotsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.daySlots, nil
}

func (s *stubAvailabilityService) Calendar(ctx context.Context, roomID string, year int, month time.Month, now time.Time) (*models.CalendarResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.calendar, nil
}

func availabilityRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAvailabilityHandler(svc)
	r.GET("/api/availability/rooms/:roomID/slots", h.GetDaySlotsHandler)
	r.GET("/api/availability/rooms/:roomID/calendar", h.GetCalendarHandler)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	return w
}

func TestGetDaySlots_OK(t *testing.T) {
	reason := string(models.ReasonBooking)
	svc := &stubAvailabilityService{daySlots: &models.DaySlotsResponse{
		Date:              "2025-06-12",
		StartOptions:      []string{"09:00", "09:30"},
		EndOptionsByStart: map[string][]string{"09:00": {"09:30", "10:00"}},
		UnavailableReasons: map[string]*string{
			"10:00": &reason,
		},
	}}
	r := availabilityRouter(svc)

	w := doGet(t, r, "/api/availability/rooms/r1/slots?date=2025-06-12")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Date               string              `json:"date"`
		StartOptions       []string            `json:"startOptions"`
		EndOptionsByStart  map[string][]string `json:"endOptionsByStart"`
		UnavailableReasons map[string]*string  `json:"unavailableReasons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-12", body.Date)
	assert.Equal(t, []string{"09:00", "09:30"}, body.StartOptions)
	assert.Equal(t, []string{"09:30", "10:00"}, body.EndOptionsByStart["09:00"])
	require.NotNil(t, body.UnavailableReasons["10:00"])
	assert.Equal(t, "conflict:existing_booking", *body.UnavailableReasons["10:00"])
}

func TestGetDaySlots_MissingDate(t *testing.T) {
	r := availabilityRouter(&stubAvailabilityService{})

	w := doGet(t, r, "/api/availability/rooms/r1/slots")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date")
}

func TestGetDaySlots_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", availability.NewInvalidInputError("bad date"), http.StatusBadRequest},
		{"unknown room", availability.NewNotFoundError("room not found"), http.StatusNotFound},
		{"upstream failure", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := availabilityRouter(&stubAvailabilityService{err: tc.err})
			w := doGet(t, r, "/api/availability/rooms/r1/slots?date=2025-06-12")
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusInternalServerError {
				// Internal detail stays in the logs, not on the wire.
				assert.NotContains(t, w.Body.String(), "mongo down")
			}
		})
	}
}

func TestGetCalendar_OK(t *testing.T) {
	svc := &stubAvailabilityService{calendar: &models.CalendarResponse{
		OperatingHours: map[string]models.OperatingHoursView{
			"monday": {Enabled: true, Start: "09:00", End: "17:00"},
		},
		AdvanceBookingDays:    30,
		SameDayBookingEnabled: true,
		ClosedDates:           []string{"2025-06-01"},
		BlackoutDates: []models.BlackoutDateView{
			{Date: "2025-06-20", Reason: "maintenance"},
		},
	}}
	r := availabilityRouter(svc)

	w := doGet(t, r, "/api/availability/rooms/r1/calendar?month=6&year=2025")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-06-20")
	assert.Contains(t, w.Body.String(), "maintenance")
}

func TestGetCalendar_InvalidParams(t *testing.T) {
	r := availabilityRouter(&stubAvailabilityService{})

	w := doGet(t, r, "/api/availability/rooms/r1/calendar?year=2025")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(t, r, "/api/availability/rooms/r1/calendar?month=6")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Out-of-range months are rejected at the parameter check, before the
	// service is consulted.
	w = doGet(t, r, "/api/availability/rooms/r1/calendar?month=13&year=2025")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month")
}
