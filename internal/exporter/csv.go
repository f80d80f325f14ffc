package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"tracekit/internal/config"
	apperrors "tracekit/internal/errors"
	"tracekit/internal/files"
)

// WriteOptions configures how processed traces are saved
type WriteOptions struct {
	// Suffix is appended to the source file stem, "_Filtered" when empty
	Suffix string
	// SaveIndex writes a leading unnamed row number column
	SaveIndex bool
}

// CSVWriter saves data frames as latin-1 encoded CSV files
type CSVWriter struct {
	files *files.Manager
}

// NewCSVWriter creates a writer placing results in outputDir, or next to
// their source files when outputDir is empty.
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{files: files.NewManager(outputDir)}
}

// WriteFrame saves df under a name derived from src and returns the path
// written. Characters outside latin-1 are replaced.
func (w *CSVWriter) WriteFrame(df dataframe.DataFrame, src string, options WriteOptions) (string, error) {
	if df.Err != nil {
		return "", apperrors.NewStorageError("refusing to write invalid frame", df.Err)
	}

	suffix := options.Suffix
	if suffix == "" {
		suffix = config.DefaultSuffix
	}
	fullPath := w.files.OutputPath(src, suffix, ".csv")

	if err := w.files.EnsureDirectory(filepath.Dir(fullPath)); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}
	defer file.Close()

	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	writer := csv.NewWriter(encoder.Writer(file))

	if err := writeRecords(writer, df, options.SaveIndex); err != nil {
		return "", apperrors.NewStorageError("failed to write csv", err).WithContext("path", fullPath)
	}

	if err := file.Sync(); err != nil {
		return "", apperrors.NewStorageError("failed to sync file", err).WithContext("path", fullPath)
	}

	slog.Debug("Saved trace",
		slog.String("path", fullPath),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return fullPath, nil
}

func writeRecords(writer *csv.Writer, df dataframe.DataFrame, saveIndex bool) error {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = df.Col(name)
	}

	header := names
	if saveIndex {
		header = append([]string{""}, names...)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for row := 0; row < df.Nrow(); row++ {
		offset := 0
		if saveIndex {
			record[0] = strconv.Itoa(row)
			offset = 1
		}
		for c, s := range cols {
			record[c+offset] = cellString(s, row)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
