package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roomly/models"
)

// collectConflicts gathers the committed intervals for one room and
// date: pending and confirmed reservations whose start falls on the
// date, plus blackout windows overlapping it. Any fetch failure
// propagates to the caller; a failed fetch must never read as "no
// conflicts".
func (s *DefaultAvailabilityService) collectConflicts(ctx context.Context, roomID string, day time.Time) ([]models.ConflictInterval, error) {
	dateStr := day.Format("2006-01-02")

	reservations, err := s.ReservationRepo.GetCommittedByDate(ctx, roomID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for %s: %w", dateStr, err)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	blackouts, err := s.BlackoutRepo.GetOverlappingRange(ctx, roomID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackouts for %s: %w", dateStr, err)
	}

	return NormalizeConflicts(reservations, blackouts, day), nil
}

// NormalizeConflicts merges a day's committed reservations and blackout
// windows into ordered conflict intervals, normalized to minutes from
// midnight on that day. This is the single definition of what occupies
// a room's time: the slot pipeline and the reservation write path both
// evaluate against it.
func NormalizeConflicts(reservations []models.Reservation, blackouts []models.Blackout, day time.Time) []models.ConflictInterval {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	conflicts := make([]models.ConflictInterval, 0, len(reservations)+len(blackouts))
	for _, r := range reservations {
		if !r.Status.Blocks() {
			continue
		}
		conflicts = append(conflicts, models.ConflictInterval{
			StartMin: r.StartMin,
			EndMin:   r.EndMin,
			Kind:     models.ConflictBooking,
		})
	}
	for _, b := range blackouts {
		conflicts = append(conflicts, clipBlackout(b, dayStart, dayEnd))
	}

	// Deterministic order: by start, bookings before blackouts on ties.
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].StartMin != conflicts[j].StartMin {
			return conflicts[i].StartMin < conflicts[j].StartMin
		}
		return conflicts[i].Kind == models.ConflictBooking && conflicts[j].Kind == models.ConflictBlackout
	})
	return conflicts
}

// clipBlackout converts a blackout window, which may span several days,
// into a time-of-day interval on the given day.
func clipBlackout(b models.Blackout, dayStart, dayEnd time.Time) models.ConflictInterval {
	start := b.Start
	if start.Before(dayStart) {
		start = dayStart
	}
	end := b.End
	if end.After(dayEnd) {
		end = dayEnd
	}
	return models.ConflictInterval{
		StartMin: int(start.Sub(dayStart).Minutes()),
		EndMin:   int(end.Sub(dayStart).Minutes()),
		Kind:     models.ConflictBlackout,
	}
}
