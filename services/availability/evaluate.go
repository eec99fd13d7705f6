package availability

import "roomly/models"

// EvaluatePoint classifies a single time point against the conflict
// intervals. A point is blocked when it falls inside a conflict expanded
// by the buffer on both sides; all intervals are half-open, so a point
// exactly at a conflict's end is free at buffer zero. The first matching
// conflict wins: any block is sufficient, so there is no need to
// aggregate across overlapping conflicts.
//
// Reasons are assigned by where the point lands: inside the raw conflict
// it carries the conflict's own kind, inside only the buffer margin it
// carries the buffer reason.
func EvaluatePoint(t int, conflicts []models.ConflictInterval, bufferMins int) models.SlotState {
	for _, c := range conflicts {
		if t >= c.StartMin-bufferMins && t < c.EndMin+bufferMins {
			reason := models.ReasonBuffer
			if t >= c.StartMin && t < c.EndMin {
				if c.Kind == models.ConflictBlackout {
					reason = models.ReasonBlackout
				} else {
					reason = models.ReasonBooking
				}
			}
			return models.SlotState{Minute: t, Available: false, Reason: &reason}
		}
	}
	return models.SlotState{Minute: t, Available: true}
}

// EvaluateGrid classifies every grid point, preserving grid order.
func EvaluateGrid(grid []int, conflicts []models.ConflictInterval, bufferMins int) []models.SlotState {
	states := make([]models.SlotState, len(grid))
	for i, t := range grid {
		states[i] = EvaluatePoint(t, conflicts, bufferMins)
	}
	return states
}
