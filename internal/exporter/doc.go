// Package exporter saves processed traces.
//
// CSVWriter writes a data frame next to its source log, or into a separate
// output directory, under the source stem plus a suffix ("_Filtered" by
// default). CSV output is latin-1 encoded to match the logger software;
// WriteXLSX produces a single sheet workbook for spreadsheet users.
//
// Example usage:
//
//	w := exporter.NewCSVWriter("")
//	path, err := w.WriteFrame(df, "logs/E9AB12_trip.csv", exporter.WriteOptions{})
//	// path == "logs/E9AB12_trip_Filtered.csv"
package exporter
