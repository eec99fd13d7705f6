package availability

import "roomly/models"

// BuildOptions derives the bookable start points and, for each start,
// the grid end points that produce a legal booking.
//
// A start is bookable iff its own grid point is available. An end e is
// legal for start s when the duration e-s satisfies the policy bounds,
// every grid point in the half-open [s, e) is available (the booking
// must cover a contiguous free run, not merely be bookended by two free
// points), and e does not land strictly inside a conflict interval. The
// last check matters for conflicts that begin between two grid points:
// the cell before them is free, yet a booking running through them is
// not. An end exactly at a conflict's start stays legal; the booking
// stops where the conflict begins.
//
// Starts with zero legal ends are still listed; callers treat an empty
// end list as non-bookable but may still want the point for display.
//
// The double scan is quadratic in grid size, which tops out at 48
// points per day at the fixed granularity.
func BuildOptions(grid []int, states []models.SlotState, conflicts []models.ConflictInterval, minDurationMins, maxDurationMins int) (starts []int, endsByStart map[int][]int) {
	endsByStart = make(map[int][]int)

	for i, s := range grid {
		if !states[i].Available {
			continue
		}
		starts = append(starts, s)

		var ends []int
		for j := i + 1; j < len(grid); j++ {
			// Once a cell inside the run is blocked, every later end
			// fails contiguity as well.
			if j > i+1 && !states[j-1].Available {
				break
			}
			e := grid[j]
			duration := e - s
			if duration > maxDurationMins {
				break
			}
			if duration < minDurationMins {
				continue
			}
			if endsInsideConflict(e, conflicts) {
				continue
			}
			ends = append(ends, e)
		}
		endsByStart[s] = ends
	}
	return starts, endsByStart
}

// IntervalBlockReason reports why a half-open [startMin, endMin)
// booking collides with the conflicts, under the same rules
// BuildOptions uses to advertise options: every occupied grid point
// must be available after buffer expansion, and the end must not land
// strictly inside a raw conflict. The reservation write path uses it
// for the authoritative commit-time re-check, so an interval the slot
// query advertises is accepted unless a race actually took it. Nil
// means the interval is bookable.
func IntervalBlockReason(conflicts []models.ConflictInterval, startMin, endMin, bufferMins int) *models.BlockReason {
	for t := startMin; t < endMin; t += GranularityMins {
		if state := EvaluatePoint(t, conflicts, bufferMins); !state.Available {
			return state.Reason
		}
	}
	for _, c := range conflicts {
		if endMin > c.StartMin && endMin < c.EndMin {
			reason := models.ReasonBooking
			if c.Kind == models.ConflictBlackout {
				reason = models.ReasonBlackout
			}
			return &reason
		}
	}
	return nil
}

// endsInsideConflict reports whether e lies strictly inside a raw
// conflict interval. The boundaries themselves are legal end points
// under the half-open convention.
func endsInsideConflict(e int, conflicts []models.ConflictInterval) bool {
	for _, c := range conflicts {
		if e > c.StartMin && e < c.EndMin {
			return true
		}
	}
	return false
}
