package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Manager resolves output locations for processed trace files
type Manager struct {
	outputDir string
}

// NewManager creates a new file manager. An empty outputDir writes results
// next to their source files.
func NewManager(outputDir string) *Manager {
	return &Manager{outputDir: outputDir}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Creating directory", slog.String("path", path))
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// GetFileSize returns the size of a file in bytes
func (m *Manager) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// OutputPath derives the result path for src: the file stem with suffix
// and ext appended, placed in the output directory when one is set.
func (m *Manager) OutputPath(src, suffix, ext string) string {
	dir, name := filepath.Split(src)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if m.outputDir != "" {
		dir = m.outputDir
	}
	return filepath.Join(dir, stem+suffix+ext)
}
