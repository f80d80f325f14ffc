package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// TraceHeader is the column header of fixtures built by TraceCSV
const TraceHeader = "t[s],GPS_x[°],GPS_y[°],GPS_z[m],GPS_speed[kph],GPS_speed_mph[mph],Gear[]"

// TraceCSV builds a telemetry log of n samples moving 1e-6 degrees per
// sample from (-83, 42), about 0.11 m per step. Each index in spikes has
// half a degree added to its GPS_x value, about 55 km off track.
// Altitude is 200+i, speeds are 50+i kph and 31+i mph, time advances
// half a second per sample.
func TraceCSV(n int, spikes ...int) string {
	spiked := make(map[int]bool, len(spikes))
	for _, i := range spikes {
		spiked[i] = true
	}

	var b strings.Builder
	b.WriteString(TraceHeader + "\n")
	for i := 0; i < n; i++ {
		x := -83 + float64(i)*1e-6
		if spiked[i] {
			x += 0.5
		}
		fmt.Fprintf(&b, "%.1f,%.7f,%.7f,%d,%d,%d,D\n",
			float64(i)*0.5, x, 42+float64(i)*1e-6, 200+i, 50+i, 31+i)
	}
	return b.String()
}

// WriteLatin1 writes content to path encoded as latin-1, creating parent
// directories, and returns path
func WriteLatin1(t *testing.T, path, content string) string {
	t.Helper()

	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
