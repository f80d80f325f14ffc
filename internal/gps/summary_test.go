package gps

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracekit/internal/config"
)

func TestGreatCircleLength(t *testing.T) {
	// one degree of arc on the equator
	assert.InDelta(t, 111195.0, GreatCircleLength([]float64{0, 0}, []float64{0, 1}), 1)
	assert.InDelta(t, 111195.0, GreatCircleLength([]float64{0, math.NaN(), 0}, []float64{0, 5, 1}), 1)
	assert.Equal(t, 0.0, GreatCircleLength([]float64{0}, []float64{0}))
}

func TestSummarize(t *testing.T) {
	lat := make([]float64, 6)
	lon := make([]float64, 6)
	for i := range lat {
		lat[i] = -83 + float64(i)*1e-4
		lon[i] = 42
	}

	res, err := NewPipeline(DefaultOptions()).Repair(context.Background(), NewTrace(lat, lon))
	require.NoError(t, err)

	s := Summarize(res, res.Signals[config.LatitudeColumn], res.Signals[config.LongitudeColumn])
	assert.Equal(t, 6, s.Samples)
	assert.Equal(t, 0, s.Patches)
	assert.Equal(t, 0, s.Replaced)
	assert.Equal(t, 33.0, s.Distance)
	assert.InDelta(t, 11.168, s.MeanStep, 0.001)
	assert.InDelta(t, 11.168, s.MaxStep, 0.001)
	// five steps of 1e-4 degrees of latitude
	assert.InDelta(t, 55.6, s.GreatCircle, 0.1)
}
