package gps

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepDistances(t *testing.T) {
	lat := []float64{-83, -82.5, -82.5, -82.5}
	lon := []float64{42, 42, 42, 42.0001}

	steps := StepDistances(lat, lon, Degrees)
	require.Len(t, steps, 3)
	assert.True(t, math.IsNaN(steps[0]), "first step is not evaluated")
	assert.True(t, math.IsNaN(steps[2]), "last step is not evaluated")
	assert.Equal(t, 0.0, steps[1])

	lat = []float64{-83, -83, -82.5, -82.5}
	steps = StepDistances(lat, lon, Degrees)
	assert.InDelta(t, 55840.58, steps[1], 0.01)

	steps = StepDistances(lat, lon, Radians)
	assert.InDelta(t, 964.89, steps[1], 0.01)
}

func TestCumulativeDistanceRadians(t *testing.T) {
	lat := []float64{-83, -82.99, -82.98, -82.97, -82.96}
	lon := []float64{42, 42.02, 42.04, 42.06, 42.08}

	// Radian deltas scaled at the sample latitude converted to radians twice
	steps := StepDistances(lat, lon, Radians)
	require.Len(t, steps, 4)
	assert.InDelta(t, 43.3752097, steps[1], 1e-6)
	assert.InDelta(t, 43.3752123, steps[2], 1e-6)

	cum := CumulativeDistance(steps)
	assert.Equal(t, []float64{0, 43.5, 87, 87, 87}, cum)
}

func TestStepDistancesShort(t *testing.T) {
	assert.Nil(t, StepDistances([]float64{1}, []float64{1}, Degrees))

	steps := StepDistances([]float64{1, 2}, []float64{1, 2}, Degrees)
	require.Len(t, steps, 1)
	assert.True(t, math.IsNaN(steps[0]))
}

func TestCumulativeDistance(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name     string
		steps    []float64
		expected []float64
	}{
		{
			name:     "three samples",
			steps:    []float64{nan, nan},
			expected: []float64{0, 0, 0},
		},
		{
			name:     "rounds to half units",
			steps:    []float64{nan, 1.2, 0.3, nan},
			expected: []float64{0, 1, 1.5, 1.5, 1.5},
		},
		{
			name:     "running sum is rounded half to even",
			steps:    []float64{nan, 1.25, 0.25, nan},
			expected: []float64{0, 1, 1, 1, 1},
		},
		{
			name:     "undefined interior step adds nothing",
			steps:    []float64{nan, 2, nan, 3, nan},
			expected: []float64{0, 2, 2, 5, 5, 5},
		},
		{
			name:     "too short",
			steps:    []float64{nan},
			expected: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, CumulativeDistance(tt.steps)); diff != "" {
				t.Errorf("CumulativeDistance() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCumulativeDistanceFromTrace(t *testing.T) {
	lat := make([]float64, 6)
	lon := make([]float64, 6)
	for i := range lat {
		lat[i] = -83 + float64(i)*1e-4 // about 11.17 m per step
		lon[i] = 42
	}

	cum := CumulativeDistance(StepDistances(lat, lon, Degrees))
	assert.Equal(t, []float64{0, 11, 22, 33, 33, 33}, cum)
}

func TestCumulativeDistanceNonDecreasing(t *testing.T) {
	lat, lon := lineTrace(200, 1e-5)
	for i := range lat {
		lat[i] += 1e-5 * math.Sin(float64(i))
	}

	cum := CumulativeDistance(StepDistances(lat, lon, Degrees))
	require.Len(t, cum, 200)
	for i := 1; i < len(cum); i++ {
		assert.GreaterOrEqual(t, cum[i], cum[i-1], "index %d", i)
	}
}
