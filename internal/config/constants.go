package config

// Application constants
const (
	AppName    = "tracekit"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (TRACEKIT_*)
	EnvPrefix = "TRACEKIT"

	// Output file naming
	DefaultSuffix = "_Filtered"
)

// Telemetry column names
const (
	LatitudeColumn   = "GPS_x[°]"
	LongitudeColumn  = "GPS_y[°]"
	AltitudeColumn   = "GPS_z[m]"
	SpeedKPHColumn   = "GPS_speed[kph]"
	SpeedMPHColumn   = "GPS_speed_mph[mph]"
	TimeColumn       = "t[s]"
	ReplacedColumn   = "GPS Replaced [STATE]"
	CumulativeColumn = "Cumulative Distance [m]"
)

// GPS repair defaults. The region box constants are applied to the latitude
// and longitude columns exactly as named, even though the values describe
// the continental US with the axes swapped.
const (
	DefaultJumpThresholdMeters = 1000.0
	DefaultRegionLatMin        = -170.0
	DefaultRegionLatMax        = -65.0
	DefaultRegionLonMin        = 25.0
	DefaultRegionLonMax        = 70.0

	DeltaDegrees = "degrees"
	DeltaRadians = "radians"
)

// DefaultSignals lists the columns repaired with the position patch list
var DefaultSignals = []string{
	LatitudeColumn,
	LongitudeColumn,
	AltitudeColumn,
	SpeedKPHColumn,
	SpeedMPHColumn,
}
