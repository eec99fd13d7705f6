package availability

import (
	"testing"

	"roomly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(start, end int) models.ConflictInterval {
	return models.ConflictInterval{StartMin: start, EndMin: end, Kind: models.ConflictBooking}
}

func blackout(start, end int) models.ConflictInterval {
	return models.ConflictInterval{StartMin: start, EndMin: end, Kind: models.ConflictBlackout}
}

func TestEvaluatePoint_NoConflicts(t *testing.T) {
	state := EvaluatePoint(10*60, nil, 15)
	assert.True(t, state.Available)
	assert.Nil(t, state.Reason)
}

func TestEvaluatePoint_BoundaryExactness(t *testing.T) {
	// A conflict [10:00, 11:00) with zero buffer blocks its start but
	// never its own end timestamp.
	conflicts := []models.ConflictInterval{booking(10*60, 11*60)}

	blocked := EvaluatePoint(10*60, conflicts, 0)
	require.False(t, blocked.Available)
	assert.Equal(t, models.ReasonBooking, *blocked.Reason)

	assert.False(t, EvaluatePoint(10*60+30, conflicts, 0).Available)
	assert.True(t, EvaluatePoint(11*60, conflicts, 0).Available)
	assert.True(t, EvaluatePoint(9*60+30, conflicts, 0).Available)
}

func TestEvaluatePoint_BufferExpansion(t *testing.T) {
	// [10:00, 11:00) with buffer 15 blocks 09:45 and 11:00 as buffer,
	// 10:00 and 10:30 as the booking itself.
	conflicts := []models.ConflictInterval{booking(10*60, 11*60)}

	for _, minute := range []int{9*60 + 45, 11 * 60} {
		state := EvaluatePoint(minute, conflicts, 15)
		require.False(t, state.Available, "minute %d", minute)
		assert.Equal(t, models.ReasonBuffer, *state.Reason, "minute %d", minute)
	}
	for _, minute := range []int{10 * 60, 10*60 + 30} {
		state := EvaluatePoint(minute, conflicts, 15)
		require.False(t, state.Available, "minute %d", minute)
		assert.Equal(t, models.ReasonBooking, *state.Reason, "minute %d", minute)
	}

	// Just outside the expanded interval on both sides.
	assert.True(t, EvaluatePoint(9*60+30, conflicts, 15).Available)
	assert.True(t, EvaluatePoint(11*60+15, conflicts, 15).Available)
}

func TestEvaluatePoint_BlackoutReason(t *testing.T) {
	conflicts := []models.ConflictInterval{blackout(13*60, 14*60)}

	state := EvaluatePoint(13*60+30, conflicts, 0)
	require.False(t, state.Available)
	assert.Equal(t, models.ReasonBlackout, *state.Reason)
}

func TestEvaluatePoint_FirstMatchWins(t *testing.T) {
	// Overlapping booking and blackout: the first interval in order
	// supplies the reason, any block being sufficient.
	conflicts := []models.ConflictInterval{
		booking(10*60, 11*60),
		blackout(10*60, 12*60),
	}

	state := EvaluatePoint(10*60+30, conflicts, 0)
	require.False(t, state.Available)
	assert.Equal(t, models.ReasonBooking, *state.Reason)

	// Past the booking's reach only the blackout remains.
	state = EvaluatePoint(11*60+30, conflicts, 0)
	require.False(t, state.Available)
	assert.Equal(t, models.ReasonBlackout, *state.Reason)
}

func TestEvaluateGrid_PreservesOrder(t *testing.T) {
	grid := []int{9 * 60, 9*60 + 30, 10 * 60}
	states := EvaluateGrid(grid, []models.ConflictInterval{booking(10*60, 11*60)}, 0)

	require.Len(t, states, 3)
	assert.Equal(t, 9*60, states[0].Minute)
	assert.True(t, states[0].Available)
	assert.True(t, states[1].Available)
	assert.False(t, states[2].Available)
}
