package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCSV(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(TraceCSV(4, 2)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, TraceHeader, lines[0])
	assert.Equal(t, "0.0,-83.0000000,42.0000000,200,50,31,D", lines[1])
	assert.Equal(t, "1.0,-82.4999980,42.0000020,202,52,33,D", lines[3])
}

func TestWriteLatin1(t *testing.T) {
	path := WriteLatin1(t, filepath.Join(t.TempDir(), "nested", "trip.csv"), "GPS_x[°]\n")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("GPS_x[\xb0]\n"), raw)
}
