// Package files provides trace file discovery and naming utilities.
//
// Discovery finds CSV logs in a directory, optionally descending into
// sub-directories, and can pick the most recently modified one. Manager
// derives output paths for processed files. The package also formats file
// sizes and extracts vehicle serials from file names for batch reports.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/data")
//	logs, err := discovery.FindCSVFiles("logs", "_Filtered", true)
//
//	manager := files.NewManager("")
//	out := manager.OutputPath(logs[0].Path, "_Filtered", ".csv")
package files
