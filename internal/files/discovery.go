package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoCSVFiles is returned when a directory search finds no CSV files
var ErrNoCSVFiles = errors.New("no csv files found")

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// passed to its methods are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindCSVFiles lists the CSV files in dir. A file qualifies when its name
// contains ".csv" and, if ignore is non-empty, does not contain ignore.
// With cascade set, sub-directories are searched as well. The result is
// sorted by path; an empty result is not an error.
func (d *Discovery) FindCSVFiles(dir, ignore string, cascade bool) ([]FileInfo, error) {
	root := d.resolve(dir)

	var files []FileInfo
	stack := []string{root}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(current)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", current, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			fullPath := filepath.Join(current, name)

			if entry.IsDir() {
				if cascade {
					stack = append(stack, fullPath)
				}
				continue
			}

			if !strings.Contains(name, ".csv") {
				continue
			}
			if ignore != "" && strings.Contains(name, ignore) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}

			files = append(files, FileInfo{
				Path:    fullPath,
				Name:    name,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// MostRecentCSV returns the most recently modified CSV file found by
// FindCSVFiles, or ErrNoCSVFiles when there is none.
func (d *Discovery) MostRecentCSV(dir, ignore string, cascade bool) (FileInfo, error) {
	files, err := d.FindCSVFiles(dir, ignore, cascade)
	if err != nil {
		return FileInfo{}, err
	}

	latest, ok := GetLatestFile(files)
	if !ok {
		return FileInfo{}, fmt.Errorf("%s: %w", d.resolve(dir), ErrNoCSVFiles)
	}
	return latest, nil
}

// Paths returns the paths of files in order
func Paths(files []FileInfo) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

// FilterFilesByDateRange filters files based on modification time
func FilterFilesByDateRange(files []FileInfo, startDate, endDate time.Time) []FileInfo {
	var filtered []FileInfo
	for _, file := range files {
		if file.ModTime.After(startDate) && file.ModTime.Before(endDate) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}
