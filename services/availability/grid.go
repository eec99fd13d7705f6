package availability

import "roomly/models"

// GranularityMins is the fixed slot grid resolution. It matches the
// resolution at which operating hours are configured.
const GranularityMins = 30

// BuildSlotGrid produces the ordered candidate start points for one
// day's operating window [Open, Close). Each point is the start of a
// full granularity-sized cell; if the window is not an exact multiple of
// the granularity the trailing partial cell is dropped, so no partial
// slot is ever offered. A disabled weekday yields an empty grid.
func BuildSlotGrid(hours models.DayHours) []int {
	if !hours.Enabled {
		return nil
	}
	var grid []int
	for t := hours.Open; t+GranularityMins <= hours.Close; t += GranularityMins {
		grid = append(grid, t)
	}
	return grid
}
