package models

// OperatingHoursView is the operating window of one weekday as exposed
// over the API, with "HH:mm" boundary strings.
type OperatingHoursView struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// RestrictionsView echoes the policy knobs relevant to booking UI.
type RestrictionsView struct {
	MinDuration           int  `json:"minDuration"` // minutes
	MaxDuration           int  `json:"maxDuration"` // minutes
	BufferTime            int  `json:"bufferTime"`  // minutes
	AdvanceBookingDays    int  `json:"advanceBookingDays"`
	SameDayBookingEnabled bool `json:"sameDayBookingEnabled"`
}

// DaySlotsResponse is the slot-query result for one room and date.
// Error is set when StartOptions is empty because of a whole-day
// restriction, so the caller always has either options or a specific
// reason why there are none.
type DaySlotsResponse struct {
	Date               string              `json:"date"`
	OperatingHours     *OperatingHoursView `json:"operatingHours"`
	Restrictions       *RestrictionsView   `json:"restrictions,omitempty"`
	StartOptions       []string            `json:"startOptions"`
	EndOptionsByStart  map[string][]string `json:"endOptionsByStart"`
	UnavailableReasons map[string]*string  `json:"unavailableReasons"`
	Error              string              `json:"error,omitempty"`
}

// BlackoutDateView is one blacked-out calendar date.
type BlackoutDateView struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// CalendarResponse is the calendar-restriction query result for one
// room and month. ClosedDates lists weekday-disabled dates; blackout
// dates carry their reason. Dates beyond the advance window are left to
// the UI, which derives them from AdvanceBookingDays.
type CalendarResponse struct {
	OperatingHours        map[string]OperatingHoursView `json:"operatingHours"`
	AdvanceBookingDays    int                           `json:"advanceBookingDays"`
	SameDayBookingEnabled bool                          `json:"sameDayBookingEnabled"`
	ClosedDates           []string                      `json:"closedDates"`
	BlackoutDates         []BlackoutDateView            `json:"blackoutDates"`
}
