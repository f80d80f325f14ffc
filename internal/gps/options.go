package gps

import (
	"tracekit/internal/config"
)

// MinSamples is the shortest trace the repair pipeline accepts
const MinSamples = 3

// DeltaUnits selects how coordinate deltas enter the distance formula
type DeltaUnits string

const (
	// Degrees feeds degree deltas and the true step midpoint, giving meters
	Degrees DeltaUnits = config.DeltaDegrees
	// Radians reproduces historical processed logs: radian deltas and the
	// step start latitude converted to radians twice
	Radians DeltaUnits = config.DeltaRadians
)

// Region is an open latitude/longitude box
type Region struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// Contains reports whether the point lies strictly inside the box
func (r Region) Contains(lat, lon float64) bool {
	return lat > r.LatMin && lat < r.LatMax && lon > r.LonMin && lon < r.LonMax
}

// Options configures classification and repair
type Options struct {
	JumpThreshold   float64
	Region          Region
	Units           DeltaUnits
	Strict          bool
	LatitudeColumn  string
	LongitudeColumn string
	// Signals are the columns repaired with the position patch list
	Signals []string
}

// DefaultOptions returns the options matching config.Default
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().GPS)
}

// OptionsFromConfig converts the GPS config section
func OptionsFromConfig(cfg config.GPSConfig) Options {
	return Options{
		JumpThreshold: cfg.JumpThresholdMeters,
		Region: Region{
			LatMin: cfg.RegionLatMin,
			LatMax: cfg.RegionLatMax,
			LonMin: cfg.RegionLonMin,
			LonMax: cfg.RegionLonMax,
		},
		Units:           DeltaUnits(cfg.DeltaUnits),
		Strict:          cfg.StrictPatches,
		LatitudeColumn:  cfg.LatitudeColumn,
		LongitudeColumn: cfg.LongitudeColumn,
		Signals:         append([]string(nil), cfg.Signals...),
	}
}
