// Package shared holds helpers used by more than one tracekit package.
//
// The testutil subpackage provides a buffered slog handler for log
// assertions and telemetry log fixtures (TraceCSV, WriteLatin1) shared by
// the loader, repair, batch and CLI tests.
package shared
