package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"tracekit/internal/files"
	"tracekit/internal/gps"
)

// FileReport is the outcome of processing one trace file
type FileReport struct {
	Input       string
	Output      string
	Workbook    string
	Serial      string
	InputSize   int64
	OutputSize  int64
	Compression string
	Summary     gps.Summary
	Duration    time.Duration
	Err         error
}

// OK reports whether the file was processed successfully
func (r FileReport) OK() bool {
	return r.Err == nil
}

// String renders the report as a single summary line
func (r FileReport) String() string {
	name := filepath.Base(r.Input)
	if r.Err != nil {
		return fmt.Sprintf("%s %s: failed: %v", r.Serial, name, r.Err)
	}
	return fmt.Sprintf("%s %s: %s -> %s (%s), %d samples, %d patches, %d replaced, %.1f m",
		r.Serial, name,
		files.ParseFileSize(r.InputSize), files.ParseFileSize(r.OutputSize), r.Compression,
		r.Summary.Samples, r.Summary.Patches, r.Summary.Replaced, r.Summary.Distance)
}

// Totals aggregates a set of reports
type Totals struct {
	Files    int
	Failed   int
	Samples  int
	Replaced int
	Distance float64
}

// Summarize totals the successful reports
func Summarize(reports []FileReport) Totals {
	var t Totals
	for _, r := range reports {
		t.Files++
		if !r.OK() {
			t.Failed++
			continue
		}
		t.Samples += r.Summary.Samples
		t.Replaced += r.Summary.Replaced
		t.Distance += r.Summary.Distance
	}
	return t
}

func (t Totals) String() string {
	return fmt.Sprintf("%d files (%d failed), %d samples, %d replaced, %.1f m",
		t.Files, t.Failed, t.Samples, t.Replaced, t.Distance)
}
