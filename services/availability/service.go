package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roomly/models"
	"roomly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DaySlots answers the slot query for one room and date. The response
// is cached briefly per (room, date); the engine output is advisory
// either way, so bounded staleness is acceptable.
func (s *DefaultAvailabilityService) DaySlots(ctx context.Context, roomID, date string, now time.Time) (*models.DaySlotsResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	cacheKey := utils.AvailabilityCachePrefix + roomID + ":" + date
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		var resp models.DaySlotsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	room, err := s.resolveRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var conflicts []models.ConflictInterval
	if room.Policy != nil && dayGateError(room.Policy, day, now) == "" {
		// Conflicts are only relevant when the day survives whole-day
		// gating; a restricted day is answered without touching the
		// conflict sources.
		conflicts, err = s.collectConflicts(ctx, roomID, day)
		if err != nil {
			return nil, err
		}
	}

	resp := ComputeDaySlots(room.Policy, conflicts, day, now)
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// Calendar answers the calendar-restriction query for one room and
// month, one verdict per date.
func (s *DefaultAvailabilityService) Calendar(ctx context.Context, roomID string, year int, month time.Month, now time.Time) (*models.CalendarResponse, error) {
	if month < time.January || month > time.December {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid month %d", month))
	}
	if year < 1970 || year > 9999 {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid year %d", year))
	}

	cacheKey := fmt.Sprintf("%s%s:%04d-%02d", utils.CalendarCachePrefix, roomID, year, int(month))
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		var resp models.CalendarResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	room, err := s.resolveRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var blackouts []models.Blackout
	if room.Policy != nil {
		first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		next := first.AddDate(0, 1, 0)
		blackouts, err = s.BlackoutRepo.GetOverlappingRange(ctx, roomID, first, next)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch blackouts for %04d-%02d: %w", year, int(month), err)
		}
	}

	resp := ComputeCalendar(room.Policy, blackouts, year, month, now)
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// ComputeDaySlots is the pure slot pipeline for one date: whole-day
// gating, grid construction, per-point evaluation and option building.
// A nil policy is fail-closed. Identical inputs always produce
// identical output.
func ComputeDaySlots(policy *models.AvailabilityPolicy, conflicts []models.ConflictInterval, day, now time.Time) *models.DaySlotsResponse {
	resp := &models.DaySlotsResponse{
		Date:               day.Format("2006-01-02"),
		StartOptions:       []string{},
		EndOptionsByStart:  map[string][]string{},
		UnavailableReasons: map[string]*string{},
	}

	if policy == nil {
		resp.Error = notConfiguredError
		return resp
	}

	hours := policy.Hours.For(day.Weekday())
	resp.OperatingHours = &models.OperatingHoursView{
		Enabled: hours.Enabled,
		Start:   models.FormatClock(hours.Open),
		End:     models.FormatClock(hours.Close),
	}
	resp.Restrictions = &models.RestrictionsView{
		MinDuration:           policy.MinDurationMins,
		MaxDuration:           policy.MaxDurationMins,
		BufferTime:            policy.BufferMins,
		AdvanceBookingDays:    policy.AdvanceBookingDays,
		SameDayBookingEnabled: policy.SameDayBooking,
	}

	if msg := dayGateError(policy, day, now); msg != "" {
		resp.Error = msg
		return resp
	}

	grid := BuildSlotGrid(hours)
	states := EvaluateGrid(grid, conflicts, policy.BufferMins)
	starts, endsByStart := BuildOptions(grid, states, conflicts, policy.MinDurationMins, policy.MaxDurationMins)

	for _, st := range starts {
		key := models.FormatClock(st)
		resp.StartOptions = append(resp.StartOptions, key)
		ends := make([]string, 0, len(endsByStart[st]))
		for _, e := range endsByStart[st] {
			ends = append(ends, models.FormatClock(e))
		}
		resp.EndOptionsByStart[key] = ends
	}
	for i, t := range grid {
		if states[i].Available {
			continue
		}
		reason := string(*states[i].Reason)
		resp.UnavailableReasons[models.FormatClock(t)] = &reason
	}
	return resp
}

// ComputeCalendar is the pure whole-day restriction pipeline for one
// month. A nil policy fails closed: every date of the month is reported
// closed.
func ComputeCalendar(policy *models.AvailabilityPolicy, blackouts []models.Blackout, year int, month time.Month, now time.Time) *models.CalendarResponse {
	resp := &models.CalendarResponse{
		OperatingHours: map[string]models.OperatingHoursView{},
		ClosedDates:    []string{},
		BlackoutDates:  []models.BlackoutDateView{},
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	next := first.AddDate(0, 1, 0)

	if policy == nil {
		for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
			resp.ClosedDates = append(resp.ClosedDates, d.Format("2006-01-02"))
		}
		return resp
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		h := policy.Hours.For(wd)
		resp.OperatingHours[models.WeekdayName(wd)] = models.OperatingHoursView{
			Enabled: h.Enabled,
			Start:   models.FormatClock(h.Open),
			End:     models.FormatClock(h.Close),
		}
	}
	resp.AdvanceBookingDays = policy.AdvanceBookingDays
	resp.SameDayBookingEnabled = policy.SameDayBooking

	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		restriction := ResolveDateRestriction(policy, blackouts, d, now)
		switch restriction.Kind {
		case models.RestrictionClosed:
			resp.ClosedDates = append(resp.ClosedDates, d.Format("2006-01-02"))
		case models.RestrictionBlackout:
			resp.BlackoutDates = append(resp.BlackoutDates, models.BlackoutDateView{
				Date:   d.Format("2006-01-02"),
				Reason: restriction.Reason,
			})
		}
		// Beyond-window dates are not serialized; the UI derives them
		// from advanceBookingDays.
	}
	return resp
}

// dayGateError returns the whole-day restriction message for the slot
// pipeline, or "" when the day is open for intraday evaluation.
func dayGateError(policy *models.AvailabilityPolicy, day, now time.Time) string {
	if !policy.Hours.For(day.Weekday()).Enabled {
		return fmt.Sprintf("room is closed on %ss", models.WeekdayName(day.Weekday()))
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.After(today.AddDate(0, 0, policy.AdvanceBookingDays)) {
		return fmt.Sprintf("bookings can be made at most %d days in advance", policy.AdvanceBookingDays)
	}
	if day.Equal(today) && !policy.SameDayBooking {
		return "same-day booking is disabled for this room"
	}
	return ""
}

func (s *DefaultAvailabilityService) cacheGet(ctx context.Context, key string) []byte {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	return data
}

func (s *DefaultAvailabilityService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := s.Cache.Set(ctx, key, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateRoomCache drops every cached slot and calendar response for
// a room. The write path calls it after any change that alters the
// room's conflicts or policy.
func InvalidateRoomCache(ctx context.Context, client *redis.Client, roomID string) {
	if client == nil {
		return
	}
	for _, pattern := range []string{
		utils.AvailabilityCachePrefix + roomID + ":*",
		utils.CalendarCachePrefix + roomID + ":*",
	} {
		keys, err := client.Keys(ctx, pattern).Result()
		if err != nil {
			utils.GetLogger().Warn("availability cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	}
}
