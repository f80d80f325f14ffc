package gps

import (
	"math"

	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// earthRadiusMeters is the mean Earth radius used to scale s2 angles
const earthRadiusMeters = 6371010.0

// Summary describes a repaired trace
type Summary struct {
	Samples  int
	Patches  int
	Replaced int
	// Distance is the rounded cumulative FCC distance in meters
	Distance float64
	// GreatCircle is the spherical length of the repaired track in meters
	GreatCircle float64
	MeanStep    float64
	MaxStep     float64
}

// Summarize computes the summary of a repair result. The great circle
// length treats the latitude and longitude signals as named.
func Summarize(res *Result, lat, lon []float64) Summary {
	s := Summary{
		Samples:  len(res.Mask),
		Patches:  len(res.Patches),
		Replaced: res.ReplacedCount(),
		Distance: res.TotalDistance(),
	}

	steps := definedSteps(res.Steps)
	if len(steps) > 0 {
		s.MeanStep = stat.Mean(steps, nil)
		s.MaxStep = floats.Max(steps)
	}

	s.GreatCircle = GreatCircleLength(lat, lon)
	return s
}

// GreatCircleLength returns the spherical length in meters of the polyline
// through the given points. Points with NaN coordinates are skipped.
func GreatCircleLength(lat, lon []float64) float64 {
	points := make([]s2.LatLng, 0, len(lat))
	for i := range lat {
		if i >= len(lon) || math.IsNaN(lat[i]) || math.IsNaN(lon[i]) {
			continue
		}
		points = append(points, s2.LatLngFromDegrees(lat[i], lon[i]))
	}
	if len(points) < 2 {
		return 0
	}
	return s2.PolylineFromLatLngs(points).Length().Radians() * earthRadiusMeters
}

func definedSteps(steps []float64) []float64 {
	out := make([]float64, 0, len(steps))
	for _, v := range steps {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
