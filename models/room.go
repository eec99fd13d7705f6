package models

import (
	"fmt"
	"time"
)

// Room represents a bookable room resource.
type Room struct {
	ID        string              `bson:"id" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Capacity  int                 `bson:"capacity" json:"capacity"`
	Policy    *AvailabilityPolicy `bson:"policy,omitempty" json:"policy,omitempty"` // nil means not configured; treated as fully unavailable
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// DayHours is the operating window for a single weekday.
// Open and Close are minutes from midnight; the window is half-open [Open, Close).
type DayHours struct {
	Enabled bool `bson:"enabled" json:"enabled"`
	Open    int  `bson:"open" json:"open"`
	Close   int  `bson:"close" json:"close"`
}

// WeekHours holds one operating window per weekday. A fixed struct rather
// than a map keyed by weekday name, so a policy can never carry a missing
// or duplicated day.
type WeekHours struct {
	Sunday    DayHours `bson:"sunday" json:"sunday"`
	Monday    DayHours `bson:"monday" json:"monday"`
	Tuesday   DayHours `bson:"tuesday" json:"tuesday"`
	Wednesday DayHours `bson:"wednesday" json:"wednesday"`
	Thursday  DayHours `bson:"thursday" json:"thursday"`
	Friday    DayHours `bson:"friday" json:"friday"`
	Saturday  DayHours `bson:"saturday" json:"saturday"`
}

// For returns the operating window for the given weekday.
func (w WeekHours) For(d time.Weekday) DayHours {
	switch d {
	case time.Sunday:
		return w.Sunday
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	default:
		return w.Saturday
	}
}

// Set replaces the operating window for the given weekday.
func (w *WeekHours) Set(d time.Weekday, h DayHours) {
	switch d {
	case time.Sunday:
		w.Sunday = h
	case time.Monday:
		w.Monday = h
	case time.Tuesday:
		w.Tuesday = h
	case time.Wednesday:
		w.Wednesday = h
	case time.Thursday:
		w.Thursday = h
	case time.Friday:
		w.Friday = h
	default:
		w.Saturday = h
	}
}

// AvailabilityPolicy is a room's configured booking policy. All durations
// are minutes.
type AvailabilityPolicy struct {
	Hours              WeekHours `bson:"hours" json:"hours"`
	MinDurationMins    int       `bson:"min_duration_mins" json:"minDurationMins"`
	MaxDurationMins    int       `bson:"max_duration_mins" json:"maxDurationMins"`
	BufferMins         int       `bson:"buffer_mins" json:"bufferMins"`
	AdvanceBookingDays int       `bson:"advance_booking_days" json:"advanceBookingDays"`
	SameDayBooking     bool      `bson:"same_day_booking" json:"sameDayBookingEnabled"`
}

// Validate checks the policy invariants.
func (p *AvailabilityPolicy) Validate() error {
	if p.MinDurationMins <= 0 {
		return fmt.Errorf("minDurationMins must be positive, got %d", p.MinDurationMins)
	}
	if p.MaxDurationMins < p.MinDurationMins {
		return fmt.Errorf("maxDurationMins %d is less than minDurationMins %d", p.MaxDurationMins, p.MinDurationMins)
	}
	if p.BufferMins < 0 {
		return fmt.Errorf("bufferMins must not be negative, got %d", p.BufferMins)
	}
	if p.AdvanceBookingDays < 0 {
		return fmt.Errorf("advanceBookingDays must not be negative, got %d", p.AdvanceBookingDays)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		h := p.Hours.For(d)
		if !h.Enabled {
			continue
		}
		if h.Open < 0 || h.Close > MinutesPerDay {
			return fmt.Errorf("%s hours out of range: %d-%d", WeekdayName(d), h.Open, h.Close)
		}
		if h.Open >= h.Close {
			return fmt.Errorf("%s opens at %s but closes at %s", WeekdayName(d), FormatClock(h.Open), FormatClock(h.Close))
		}
	}
	return nil
}

// WeekdayName returns the lowercase weekday name used in API payloads.
func WeekdayName(d time.Weekday) string {
	names := [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	return names[int(d)%7]
}
