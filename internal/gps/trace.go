package gps

import (
	"fmt"
	"sort"

	"tracekit/internal/config"
)

// Trace is a set of equal-length signals sampled at the same instants.
// Latitude and Longitude name the signals used for classification.
type Trace struct {
	Latitude  string
	Longitude string
	Signals   map[string][]float64
}

// NewTrace creates a trace with the default position column names
func NewTrace(lat, lon []float64) *Trace {
	t := &Trace{
		Latitude:  config.LatitudeColumn,
		Longitude: config.LongitudeColumn,
		Signals:   make(map[string][]float64),
	}
	t.Signals[t.Latitude] = lat
	t.Signals[t.Longitude] = lon
	return t
}

// Add attaches a signal to the trace
func (t *Trace) Add(name string, values []float64) *Trace {
	if t.Signals == nil {
		t.Signals = make(map[string][]float64)
	}
	t.Signals[name] = values
	return t
}

// Len returns the number of samples, taken from the latitude signal
func (t *Trace) Len() int {
	return len(t.Signals[t.Latitude])
}

// Names returns the signal names in sorted order
func (t *Trace) Names() []string {
	names := make([]string, 0, len(t.Signals))
	for name := range t.Signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the position signals exist, every signal has the same
// length and the trace has at least MinSamples samples
func (t *Trace) Validate() error {
	for _, name := range []string{t.Latitude, t.Longitude} {
		if _, ok := t.Signals[name]; !ok {
			return fmt.Errorf("position signal %q missing", name)
		}
	}

	n := t.Len()
	for _, name := range t.Names() {
		if len(t.Signals[name]) != n {
			return fmt.Errorf("%w: %s has %d samples, expected %d", ErrSignalLength, name, len(t.Signals[name]), n)
		}
	}

	if n < MinSamples {
		return fmt.Errorf("%w: %d samples, need at least %d", ErrTraceTooShort, n, MinSamples)
	}
	return nil
}

// Result is a repaired trace
type Result struct {
	Signals            map[string][]float64
	Mask               []bool
	Patches            []Patch
	Replaced           []bool
	Steps              []float64
	CumulativeDistance []float64
}

// ReplacedCount returns the number of samples flagged as replaced
func (r *Result) ReplacedCount() int {
	count := 0
	for _, replaced := range r.Replaced {
		if replaced {
			count++
		}
	}
	return count
}

// TotalDistance returns the last cumulative distance in meters
func (r *Result) TotalDistance() float64 {
	if len(r.CumulativeDistance) == 0 {
		return 0
	}
	return r.CumulativeDistance[len(r.CumulativeDistance)-1]
}
