package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nan() float64 { return math.NaN() }

func TestEMA(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		span     int
		expected []float64
	}{
		{
			name:     "span 3 halves toward new values",
			data:     []float64{0, 4, 4, 8},
			span:     3,
			expected: []float64{0, 2, 3, 5.5},
		},
		{
			name:     "span 1 is identity",
			data:     []float64{1, 5, 2},
			span:     1,
			expected: []float64{1, 5, 2},
		},
		{
			name:     "zero span uses default",
			data:     []float64{0, 4},
			expected: []float64{0, 2},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.expected, EMA(tt.data, tt.span), 1e-12)
		})
	}
}

func TestApplyFilter(t *testing.T) {
	data := [][]float64{{0, 4}, {0, 8}, {0, 2}}

	all := ApplyFilter(data, nil, 3)
	assert.Equal(t, [][]float64{{0, 2}, {0, 4}, {0, 1}}, all)

	some := ApplyFilter(data, []int{1}, 3)
	assert.Equal(t, [][]float64{{0, 4}, {0, 4}, {0, 2}}, some)
	assert.Equal(t, []float64{0, 8}, data[1], "input is not modified")
}
