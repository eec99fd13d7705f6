package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	roomRepo "roomly/database/repository/room"
	"roomly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepo struct {
	rooms map[string]*models.Room
	err   error
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error { return f.err }
func (f *fakeRoomRepo) GetByID(ctx context.Context, roomID string) (*models.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}
func (f *fakeRoomRepo) List(ctx context.Context) ([]models.Room, error) { return nil, f.err }
func (f *fakeRoomRepo) UpdatePolicy(ctx context.Context, roomID string, policy *models.AvailabilityPolicy) error {
	return f.err
}
func (f *fakeRoomRepo) Delete(ctx context.Context, roomID string) error { return f.err }
func (f *fakeRoomRepo) EnsureIndexes() error                            { return nil }

type fakeReservationRepo struct {
	reservations []models.Reservation
	err          error
	fetches      int
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	return f.err
}
func (f *fakeReservationRepo) GetByID(ctx context.Context, reservationID string) (*models.Reservation, error) {
	return nil, f.err
}
func (f *fakeReservationRepo) GetCommittedByDate(ctx context.Context, roomID, date string) ([]models.Reservation, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.Date == date && r.Status.Blocks() {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, reservationID string, from, to models.ReservationStatus) error {
	return f.err
}
func (f *fakeReservationRepo) ExpirePending(ctx context.Context, reservationID string, now time.Time) error {
	return f.err
}
func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

type fakeBlackoutRepo struct {
	blackouts []models.Blackout
	err       error
	fetches   int
}

func (f *fakeBlackoutRepo) Create(ctx context.Context, blackout *models.Blackout) error {
	return f.err
}
func (f *fakeBlackoutRepo) Delete(ctx context.Context, blackoutID string) error { return f.err }
func (f *fakeBlackoutRepo) GetOverlappingRange(ctx context.Context, roomID string, from, to time.Time) ([]models.Blackout, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Blackout
	for _, b := range f.blackouts {
		if b.RoomID == roomID && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBlackoutRepo) EnsureIndexes() error { return nil }

func newTestService(rooms *fakeRoomRepo, reservations *fakeReservationRepo, blackouts *fakeBlackoutRepo) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		RoomRepo:        rooms,
		ReservationRepo: reservations,
		BlackoutRepo:    blackouts,
	}
}

func roomWithPolicy(id string) *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]*models.Room{
		id: {ID: id, Name: "Boardroom", Capacity: 8, Policy: testPolicy()},
	}}
}

func TestDaySlots_ReferenceScenario(t *testing.T) {
	rooms := roomWithPolicy("r1")
	reservations := &fakeReservationRepo{reservations: []models.Reservation{{
		ID:       "b1",
		RoomID:   "r1",
		Date:     "2025-06-12",
		StartMin: 10 * 60,
		EndMin:   11 * 60,
		Status:   models.ReservationConfirmed,
	}}}
	svc := newTestService(rooms, reservations, &fakeBlackoutRepo{})

	resp, err := svc.DaySlots(context.Background(), "r1", "2025-06-12", evalNow)
	require.NoError(t, err)
	require.Empty(t, resp.Error)

	assert.Equal(t, "2025-06-12", resp.Date)
	require.NotNil(t, resp.OperatingHours)
	assert.True(t, resp.OperatingHours.Enabled)
	assert.Equal(t, "09:00", resp.OperatingHours.Start)
	assert.Equal(t, "17:00", resp.OperatingHours.End)
	require.NotNil(t, resp.Restrictions)
	assert.Equal(t, 15, resp.Restrictions.BufferTime)

	for _, blocked := range []string{"10:00", "10:30", "11:00"} {
		assert.NotContains(t, resp.StartOptions, blocked)
	}
	assert.Contains(t, resp.StartOptions, "09:30")
	assert.Contains(t, resp.StartOptions, "11:30")

	// 09:30 may only run to the booking's start.
	assert.Equal(t, []string{"10:00"}, resp.EndOptionsByStart["09:30"])

	// Reasons: the booked cells report the booking, the trailing buffer
	// cell reports the buffer.
	require.Contains(t, resp.UnavailableReasons, "10:00")
	assert.Equal(t, string(models.ReasonBooking), *resp.UnavailableReasons["10:00"])
	require.Contains(t, resp.UnavailableReasons, "11:00")
	assert.Equal(t, string(models.ReasonBuffer), *resp.UnavailableReasons["11:00"])
}

func TestDaySlots_InvalidDate(t *testing.T) {
	svc := newTestService(roomWithPolicy("r1"), &fakeReservationRepo{}, &fakeBlackoutRepo{})

	_, err := svc.DaySlots(context.Background(), "r1", "12-06-2025", evalNow)
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, CodeInvalidInput, qerr.Code)
}

func TestDaySlots_UnknownRoom(t *testing.T) {
	svc := newTestService(&fakeRoomRepo{rooms: map[string]*models.Room{}}, &fakeReservationRepo{}, &fakeBlackoutRepo{})

	_, err := svc.DaySlots(context.Background(), "ghost", "2025-06-12", evalNow)
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, CodeNotFound, qerr.Code)
}

func TestDaySlots_NoPolicyFailsClosed(t *testing.T) {
	rooms := &fakeRoomRepo{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Name: "Unconfigured"},
	}}
	reservations := &fakeReservationRepo{}
	svc := newTestService(rooms, reservations, &fakeBlackoutRepo{})

	resp, err := svc.DaySlots(context.Background(), "r1", "2025-06-12", evalNow)
	require.NoError(t, err)
	assert.Equal(t, notConfiguredError, resp.Error)
	assert.Empty(t, resp.StartOptions)
	assert.Empty(t, resp.EndOptionsByStart)
	assert.Zero(t, reservations.fetches, "conflict sources must not be consulted")
}

func TestDaySlots_RestrictedDaysSkipConflictFetch(t *testing.T) {
	cases := []struct {
		name   string
		date   string
		adjust func(*models.AvailabilityPolicy)
		want   string
	}{
		{"closed weekday", "2025-06-15", nil, "sunday"},
		{"beyond advance window", "2025-07-14", nil, "30 days"},
		{"same-day disabled", "2025-06-11", func(p *models.AvailabilityPolicy) { p.SameDayBooking = false }, "same-day"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := testPolicy()
			if tc.adjust != nil {
				tc.adjust(policy)
			}
			rooms := &fakeRoomRepo{rooms: map[string]*models.Room{
				"r1": {ID: "r1", Policy: policy},
			}}
			reservations := &fakeReservationRepo{}
			svc := newTestService(rooms, reservations, &fakeBlackoutRepo{})

			resp, err := svc.DaySlots(context.Background(), "r1", tc.date, evalNow)
			require.NoError(t, err)
			assert.Contains(t, resp.Error, tc.want)
			assert.Empty(t, resp.StartOptions)
			assert.Zero(t, reservations.fetches)
		})
	}
}

func TestDaySlots_FetchErrorPropagates(t *testing.T) {
	reservations := &fakeReservationRepo{err: errors.New("mongo down")}
	svc := newTestService(roomWithPolicy("r1"), reservations, &fakeBlackoutRepo{})

	resp, err := svc.DaySlots(context.Background(), "r1", "2025-06-12", evalNow)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "mongo down")
}

func TestDaySlots_MultiDayBlackoutClipped(t *testing.T) {
	// A blackout from the previous evening into 10:00 blocks the morning
	// cells as a blackout; 10:00 itself is the half-open end and is free.
	blackouts := &fakeBlackoutRepo{blackouts: []models.Blackout{{
		ID:     "bl1",
		RoomID: "r1",
		Start:  time.Date(2025, time.June, 11, 22, 0, 0, 0, time.UTC),
		End:    time.Date(2025, time.June, 12, 10, 0, 0, 0, time.UTC),
		Reason: "deep clean",
	}}}
	rooms := roomWithPolicy("r1")
	policy := rooms.rooms["r1"].Policy
	policy.BufferMins = 0
	svc := newTestService(rooms, &fakeReservationRepo{}, blackouts)

	resp, err := svc.DaySlots(context.Background(), "r1", "2025-06-12", evalNow)
	require.NoError(t, err)

	require.Contains(t, resp.UnavailableReasons, "09:00")
	assert.Equal(t, string(models.ReasonBlackout), *resp.UnavailableReasons["09:00"])
	assert.NotContains(t, resp.StartOptions, "09:30")
	assert.Contains(t, resp.StartOptions, "10:00")
}

func TestComputeDaySlots_Deterministic(t *testing.T) {
	conflicts := []models.ConflictInterval{booking(10*60, 11*60), blackout(14*60, 15*60)}
	day := day(2025, time.June, 12)

	first, err := json.Marshal(ComputeDaySlots(testPolicy(), conflicts, day, evalNow))
	require.NoError(t, err)
	second, err := json.Marshal(ComputeDaySlots(testPolicy(), conflicts, day, evalNow))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalendar_MonthBreakdown(t *testing.T) {
	blackouts := &fakeBlackoutRepo{blackouts: []models.Blackout{{
		ID:     "bl1",
		RoomID: "r1",
		Start:  time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC),
		Reason: "maintenance",
	}}}
	svc := newTestService(roomWithPolicy("r1"), &fakeReservationRepo{}, blackouts)

	resp, err := svc.Calendar(context.Background(), "r1", 2025, time.June, evalNow)
	require.NoError(t, err)

	assert.True(t, resp.OperatingHours["monday"].Enabled)
	assert.False(t, resp.OperatingHours["sunday"].Enabled)
	assert.Equal(t, 30, resp.AdvanceBookingDays)
	assert.True(t, resp.SameDayBookingEnabled)

	// June 2025 has four full weekends plus Sunday the 1st.
	assert.Contains(t, resp.ClosedDates, "2025-06-01")
	assert.Contains(t, resp.ClosedDates, "2025-06-28")
	assert.Len(t, resp.ClosedDates, 9)

	require.Len(t, resp.BlackoutDates, 1)
	assert.Equal(t, "2025-06-20", resp.BlackoutDates[0].Date)
	assert.Equal(t, "maintenance", resp.BlackoutDates[0].Reason)
}

func TestCalendar_NoPolicyClosesEveryDate(t *testing.T) {
	rooms := &fakeRoomRepo{rooms: map[string]*models.Room{
		"r1": {ID: "r1"},
	}}
	blackouts := &fakeBlackoutRepo{}
	svc := newTestService(rooms, &fakeReservationRepo{}, blackouts)

	resp, err := svc.Calendar(context.Background(), "r1", 2025, time.June, evalNow)
	require.NoError(t, err)
	assert.Len(t, resp.ClosedDates, 30)
	assert.Empty(t, resp.BlackoutDates)
	assert.Zero(t, blackouts.fetches)
}

func TestCalendar_InvalidMonth(t *testing.T) {
	svc := newTestService(roomWithPolicy("r1"), &fakeReservationRepo{}, &fakeBlackoutRepo{})

	_, err := svc.Calendar(context.Background(), "r1", 2025, time.Month(13), evalNow)
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, CodeInvalidInput, qerr.Code)
}
