package availability

import (
	"fmt"
	"time"

	"roomly/models"
)

// ResolveDateRestriction produces the whole-day verdict for calendar
// gating, in priority order: a disabled weekday wins over a blackout,
// which wins over the advance-booking window. The date is compared at
// day granularity; a blackout touching any part of the day restricts
// the whole date here even when parts of the day remain free in the
// intraday slot pipeline.
//
// Same-day-disabled is deliberately not folded into this verdict: the
// slot query rejects same-day requests itself, but calendar rendering
// keeps today selectable. See DESIGN.md for the recorded discrepancy.
func ResolveDateRestriction(policy *models.AvailabilityPolicy, blackouts []models.Blackout, day, now time.Time) models.DateRestriction {
	if !policy.Hours.For(day.Weekday()).Enabled {
		return models.DateRestriction{
			Kind:   models.RestrictionClosed,
			Reason: fmt.Sprintf("closed on %ss", models.WeekdayName(day.Weekday())),
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, b := range blackouts {
		if b.Start.Before(dayEnd) && b.End.After(dayStart) {
			return models.DateRestriction{
				Kind:   models.RestrictionBlackout,
				Reason: b.Reason,
			}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dayStart.After(today.AddDate(0, 0, policy.AdvanceBookingDays)) {
		return models.DateRestriction{
			Kind:   models.RestrictionBeyondWindow,
			Reason: fmt.Sprintf("bookings open at most %d days in advance", policy.AdvanceBookingDays),
		}
	}

	return models.DateRestriction{Kind: models.RestrictionNone}
}
