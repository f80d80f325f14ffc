package gps

import (
	"math"
)

// fccScale returns the kilometers per degree of latitude (k1) and of
// longitude (k2) at the given latitude in radians
func fccScale(latRad float64) (k1, k2 float64) {
	k1 = 111.13209 - 0.56605*math.Cos(2*latRad) + 0.0012*math.Cos(4*latRad)
	k2 = 111.41513*math.Cos(latRad) - 0.09455*math.Cos(3*latRad) + 0.00012*math.Cos(5*latRad)
	return k1, k2
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// stepDistance returns the FCC planar distance in meters of step i to i+1
func stepDistance(lat, lon []float64, i int, units DeltaUnits) float64 {
	var dx, dy, mid float64
	switch units {
	case Radians:
		dx = toRadians(lat[i+1]) - toRadians(lat[i])
		dy = toRadians(lon[i+1]) - toRadians(lon[i])
		mid = toRadians(toRadians(lat[i]))
	default:
		dx = lat[i+1] - lat[i]
		dy = lon[i+1] - lon[i]
		mid = toRadians((lat[i] + lat[i+1]) / 2)
	}

	k1, k2 := fccScale(mid)
	return 1000 * math.Hypot(k1*dx, k2*dy)
}

// StepDistances returns the per-step distances of a position trace. Entry
// j is the step from sample j to j+1. The first and last steps are not
// evaluated and hold NaN, so a trace of n samples yields n-1 entries with
// n-3 defined values.
func StepDistances(lat, lon []float64, units DeltaUnits) []float64 {
	n := len(lat)
	if n < 2 {
		return nil
	}

	steps := make([]float64, n-1)
	for j := range steps {
		if j == 0 || j == n-2 {
			steps[j] = math.NaN()
			continue
		}
		steps[j] = stepDistance(lat, lon, j, units)
	}
	return steps
}

// CumulativeDistance accumulates steps into a running distance of n
// samples. The running sum is rounded to the nearest half unit at every
// step, halves to even, and the last two samples repeat the value at n-3.
// Undefined steps add nothing; historical outputs instead turned every
// later value NaN after one.
func CumulativeDistance(steps []float64) []float64 {
	n := len(steps) + 1
	if n < MinSamples {
		return make([]float64, n)
	}

	cum := make([]float64, n)
	for i := 1; i <= n-3; i++ {
		step := steps[i]
		if math.IsNaN(step) {
			step = 0
		}
		cum[i] = math.RoundToEven(2*(cum[i-1]+step)) / 2
	}
	cum[n-2] = cum[n-3]
	cum[n-1] = cum[n-3]
	return cum
}
