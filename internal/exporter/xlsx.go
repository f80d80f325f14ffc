package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"tracekit/internal/config"
	apperrors "tracekit/internal/errors"
)

// SheetName is the worksheet holding exported traces
const SheetName = "Trace"

// WriteXLSX saves df as a single sheet workbook under a name derived from
// src and returns the path written.
func (w *CSVWriter) WriteXLSX(df dataframe.DataFrame, src string, options WriteOptions) (string, error) {
	if df.Err != nil {
		return "", apperrors.NewStorageError("refusing to write invalid frame", df.Err)
	}

	suffix := options.Suffix
	if suffix == "" {
		suffix = config.DefaultSuffix
	}
	fullPath := w.files.OutputPath(src, suffix, ".xlsx")
	if err := w.files.EnsureDirectory(filepath.Dir(fullPath)); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", apperrors.NewStorageError("failed to name sheet", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return "", apperrors.NewStorageError("failed to open sheet writer", err)
	}

	if err := streamRows(sw, df); err != nil {
		return "", apperrors.NewStorageError("failed to write workbook rows", err).WithContext("path", fullPath)
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", apperrors.NewStorageError("failed to save workbook", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

func streamRows(sw *excelize.StreamWriter, df dataframe.DataFrame) error {
	names := df.Names()
	cols := make([]series.Series, len(names))
	header := make([]interface{}, len(names))
	for i, name := range names {
		cols[i] = df.Col(name)
		header[i] = name
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	for row := 0; row < df.Nrow(); row++ {
		values := make([]interface{}, len(cols))
		for c, s := range cols {
			values[c] = cellValue(s, row)
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
	}

	return sw.Flush()
}
