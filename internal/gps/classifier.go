package gps

import "fmt"

// Classify returns the keep mask of a position trace. Sample j is kept when
// the step leaving it is shorter than the jump threshold and the sample lies
// inside the region box. Samples 0, n-2 and n-1 are always kept so that
// every patch has anchors on both sides.
func Classify(lat, lon []float64, opts Options) ([]bool, error) {
	n := len(lat)
	if len(lon) != n {
		return nil, fmt.Errorf("%w: %d latitudes, %d longitudes", ErrSignalLength, n, len(lon))
	}
	if n < MinSamples {
		return nil, fmt.Errorf("%w: %d samples, need at least %d", ErrTraceTooShort, n, MinSamples)
	}

	steps := StepDistances(lat, lon, opts.Units)
	keep := make([]bool, n)
	for j, dist := range steps {
		// NaN distances and coordinates fail both comparisons
		keep[j] = dist < opts.JumpThreshold && opts.Region.Contains(lat[j], lon[j])
	}

	keep[0] = true
	keep[n-2] = true
	keep[n-1] = true
	return keep, nil
}
