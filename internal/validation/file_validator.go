package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "tracekit/internal/errors"
)

// FileValidator checks the CLI input and output locations before a batch
// starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputDirectory checks that dir exists and is a directory
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist", slog.String("directory", dir))
		return apperrors.NewNotFoundError(fmt.Sprintf("input directory %s", dir), err)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat input directory", err).WithContext("directory", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory", slog.String("path", dir))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and
// is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("directory", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateTraceFile checks that path is a readable CSV or XLSX log and not
// a spreadsheet lock file
func (v *FileValidator) ValidateTraceFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError(fmt.Sprintf("trace file %s", path), err)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat trace file", err).WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a csv or xlsx file", path), nil).
			WithContext("extension", ext)
	}
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary spreadsheet file", slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a temporary file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("trace file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("Trace file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateTraceFiles validates every path and stops at the first failure
func (v *FileValidator) ValidateTraceFiles(paths []string) error {
	for _, path := range paths {
		if err := v.ValidateTraceFile(path); err != nil {
			return err
		}
	}
	return nil
}
