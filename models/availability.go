package models

import "fmt"

// MinutesPerDay bounds all time-of-day values.
const MinutesPerDay = 24 * 60

// ConflictKind distinguishes what produced a conflict interval.
type ConflictKind string

const (
	ConflictBooking  ConflictKind = "booking"
	ConflictBlackout ConflictKind = "blackout"
)

// ConflictInterval is a committed reservation or blackout window
// normalized to half-open minutes-from-midnight [StartMin, EndMin) on a
// single date.
type ConflictInterval struct {
	StartMin int          `json:"start"`
	EndMin   int          `json:"end"`
	Kind     ConflictKind `json:"kind"`
}

// BlockReason says why a grid point is unavailable. The values are the
// wire strings returned by the slot query.
type BlockReason string

const (
	ReasonBooking  BlockReason = "conflict:existing_booking"
	ReasonBlackout BlockReason = "conflict:blackout"
	ReasonBuffer   BlockReason = "conflict:buffer"
)

// SlotState is the availability verdict for one grid point.
type SlotState struct {
	Minute    int          `json:"minute"`
	Available bool         `json:"available"`
	Reason    *BlockReason `json:"reason,omitempty"`
}

// BookingOption is a concrete (start, end) pair satisfying duration and
// contiguity constraints.
type BookingOption struct {
	StartMin int `json:"start"`
	EndMin   int `json:"end"`
}

// DateRestrictionKind is the whole-day verdict used for calendar gating.
type DateRestrictionKind string

const (
	RestrictionNone         DateRestrictionKind = "none"
	RestrictionClosed       DateRestrictionKind = "closed"
	RestrictionBlackout     DateRestrictionKind = "blackout"
	RestrictionBeyondWindow DateRestrictionKind = "beyond_window"
)

// DateRestriction is a whole-day gating verdict plus a human-readable
// reason when restricted.
type DateRestriction struct {
	Kind   DateRestrictionKind `json:"kind"`
	Reason string              `json:"reason,omitempty"`
}

// FormatClock renders minutes-from-midnight as "HH:mm".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ParseClock parses "HH:mm" into minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || h*60+m > MinutesPerDay {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}
