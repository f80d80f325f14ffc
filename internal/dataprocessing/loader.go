package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	apperrors "tracekit/internal/errors"
)

// unnamedMarker flags spreadsheet index columns that carry no signal
const unnamedMarker = "unnamed"

// ReadCSV loads a latin-1 encoded telemetry log into a data frame. When
// columns are given only those are loaded, in file order. Index columns
// (blank headers or headers containing "Unnamed") are dropped.
func ReadCSV(path string, columns ...string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewStorageError("failed to open trace file", err).
			WithContext("path", path)
	}
	defer f.Close()

	df, err := LoadCSV(charmap.ISO8859_1.NewDecoder().Reader(f), columns...)
	if err != nil {
		return df, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return df, nil
}

// LoadCSV parses UTF-8 CSV records from r. See ReadCSV.
func LoadCSV(r io.Reader, columns ...string) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to read csv records", err)
	}

	return LoadRecords(records, columns...)
}

// ReadXLSX loads the first sheet of an Excel workbook exported by the
// logger software. Header handling matches ReadCSV.
func ReadXLSX(path string, columns ...string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to read sheet rows", err).
			WithContext("sheet", sheets[0])
	}

	return LoadRecords(rows, columns...)
}

// LoadRecords builds a data frame from a header row followed by data rows.
// Short rows are padded with blanks and fields beyond the header are
// ignored. Numeric columns load as floats.
func LoadRecords(records [][]string, columns ...string) (dataframe.DataFrame, error) {
	if len(records) < 2 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("trace has no data rows", nil)
	}

	header := records[0]
	keep, err := selectColumns(header, columns)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(keep) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("trace has no named columns", nil)
	}

	trimmed := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(rec) {
				row[j] = strings.TrimSpace(rec[idx])
			}
		}
		trimmed[i] = row
	}

	types := make(map[string]series.Type, len(keep))
	for j := range keep {
		if isNumericColumn(trimmed[1:], j) {
			types[trimmed[0][j]] = series.Float
		}
	}

	df := dataframe.LoadRecords(trimmed,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.Float),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{"", "NA", "NaN", "nan", "<nil>"}),
	)
	if df.Err != nil {
		return df, apperrors.NewParsingError("failed to build data frame", df.Err)
	}
	return df, nil
}

// selectColumns returns the header indexes to load. Requested columns
// must all be present.
func selectColumns(header, columns []string) ([]int, error) {
	var keep []int
	if len(columns) == 0 {
		for i, name := range header {
			if isIndexColumn(name) {
				continue
			}
			keep = append(keep, i)
		}
		return keep, nil
	}

	wanted := make(map[string]bool, len(columns))
	for _, c := range columns {
		wanted[c] = true
	}
	found := make(map[string]bool, len(columns))
	for i, name := range header {
		if wanted[name] && !found[name] && !isIndexColumn(name) {
			keep = append(keep, i)
			found[name] = true
		}
	}
	for _, c := range columns {
		if !found[c] {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", c), nil)
		}
	}
	return keep, nil
}

func isIndexColumn(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.Contains(strings.ToLower(name), unnamedMarker)
}

// isNumericColumn reports whether every non-blank cell in column j parses
// as a number.
func isNumericColumn(rows [][]string, j int) bool {
	for _, row := range rows {
		v := row[j]
		switch strings.ToLower(v) {
		case "", "na", "nan", "<nil>":
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}
