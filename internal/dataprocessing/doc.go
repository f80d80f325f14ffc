// Package dataprocessing loads vehicle telemetry logs into data frames and
// provides the column level helpers used around GPS repair.
//
// # Loading
//
// Logs are latin-1 encoded CSV files (or Excel workbooks) with one header
// row. Headers follow the "Name[Unit]" convention, for example "GPS_x[°]"
// or "Engine Speed[rpm]". Index columns written by spreadsheet tools are
// dropped on load.
//
//	df, err := dataprocessing.ReadCSV("E9AB12_2025-03-01.csv")
//
// # Columns
//
// ColumnData, ParseNames and SignalFromName resolve loose signal names to
// headers. Difference subtracts one signal from another.
//
// # Preferences
//
// A preferences file lists columns to discard and decimal places per column
// name or unit. Discard and Squish apply it to shrink processed traces.
//
//	prefs, err := dataprocessing.LoadPreferences("prefs.json")
//	df = dataprocessing.Discard(df, prefs, true)
//	df, err = dataprocessing.Squish(df, prefs)
//
// # Filtering
//
// EMA and ApplyFilter smooth signals with an exponential moving average.
package dataprocessing
