package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tracekit/internal/gps"
)

func TestFileReportString(t *testing.T) {
	ok := FileReport{
		Input:       "/logs/E9AB12_trip.csv",
		Serial:      "E9AB12",
		InputSize:   2_500_000,
		OutputSize:  2_000_000,
		Compression: "20.0%",
		Summary:     gps.Summary{Samples: 1200, Patches: 2, Replaced: 7, Distance: 1520.5},
	}
	assert.Equal(t,
		"E9AB12 E9AB12_trip.csv: 2.5mb -> 2.0mb (20.0%), 1200 samples, 2 patches, 7 replaced, 1520.5 m",
		ok.String())

	failed := FileReport{Input: "/logs/trip.csv", Serial: "E9XXXX", Err: errors.New("boom")}
	assert.Equal(t, "E9XXXX trip.csv: failed: boom", failed.String())
}

func TestSummarize(t *testing.T) {
	reports := []FileReport{
		{Summary: gps.Summary{Samples: 10, Replaced: 2, Distance: 5.5}},
		{Summary: gps.Summary{Samples: 20, Replaced: 1, Distance: 10}},
		{Err: errors.New("bad"), Summary: gps.Summary{Samples: 99}},
	}

	totals := Summarize(reports)
	assert.Equal(t, Totals{Files: 3, Failed: 1, Samples: 30, Replaced: 3, Distance: 15.5}, totals)
	assert.Equal(t, "3 files (1 failed), 30 samples, 3 replaced, 15.5 m", totals.String())
}
