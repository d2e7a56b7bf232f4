package racing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absamad/pigeontracker/models"
)

func strptr(s string) *string { return &s }

func TestComputeTiming(t *testing.T) {
	trap := strptr("08:56:50")

	timing, err := ComputeTiming("2024-11-15", "08:05", trap, 70.35)
	require.NoError(t, err)

	assert.Equal(t, 3110, timing.Second)
	assert.Equal(t, 51, timing.Minute)
	assert.Equal(t, "0:51:50", timing.TotalTime)
	assert.InDelta(t, 1484.29, timing.Velocity, 0.01)
}

func TestComputeTimingNoTrappingTime(t *testing.T) {
	timing, err := ComputeTiming("2024-11-15", "08:05", nil, 70.35)
	require.NoError(t, err)
	assert.Equal(t, UndeterminedTiming(), timing)

	timing, err = ComputeTiming("2024-11-15", "08:05", strptr(""), 70.35)
	require.NoError(t, err)
	assert.Equal(t, UndeterminedTiming(), timing)
}

func TestComputeTimingTrappingBeforeRelease(t *testing.T) {
	_, err := ComputeTiming("2024-11-15", "08:05", strptr("08:00:00"), 70.35)
	assert.ErrorIs(t, err, ErrInvalidTiming)

	// Exactly at release is invalid too.
	_, err = ComputeTiming("2024-11-15", "08:05", strptr("08:05:00"), 70.35)
	assert.ErrorIs(t, err, ErrInvalidTiming)
}

func TestComputeTimingHoursNotZeroPadded(t *testing.T) {
	timing, err := ComputeTiming("2024-11-15", "08:00", strptr("18:30:05"), 500)
	require.NoError(t, err)
	assert.Equal(t, "10:30:05", timing.TotalTime)
	assert.Equal(t, 37805, timing.Second)
	assert.Equal(t, 630, timing.Minute)
}

func TestComputeTimingMinutePrecisionTrap(t *testing.T) {
	timing, err := ComputeTiming("2024-11-15", "08:05", strptr("09:05"), 60)
	require.NoError(t, err)
	assert.Equal(t, 3600, timing.Second)
	assert.Equal(t, "1:00:00", timing.TotalTime)
	assert.InDelta(t, 60*kmhToYPM, timing.Velocity, 0.0001)
}

func TestComputeTimingRejectsBadDistance(t *testing.T) {
	for _, distance := range []float64{0, -5, math.Inf(1), math.NaN()} {
		_, err := ComputeTiming("2024-11-15", "08:05", strptr("08:56:50"), distance)
		assert.True(t, IsValidation(err), "distance %v should be rejected", distance)
	}
}

func TestComputeTimingRejectsMalformedClock(t *testing.T) {
	_, err := ComputeTiming("2024-11-15", "08:05", strptr("nonsense"), 70.35)
	assert.True(t, IsValidation(err))

	_, err = ComputeTiming("2024-11-15", "8 o'clock", strptr("08:56:50"), 70.35)
	assert.True(t, IsValidation(err))
}

func TestUndeterminedTimingSentinel(t *testing.T) {
	timing := UndeterminedTiming()
	assert.Equal(t, models.UndeterminedTime, timing.TotalTime)
	assert.Zero(t, timing.Second)
	assert.Zero(t, timing.Minute)
	assert.Zero(t, timing.Velocity)
}
