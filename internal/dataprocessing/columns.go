package dataprocessing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"

	apperrors "tracekit/internal/errors"
)

// ErrColumnNotFound is returned when no column matches a lookup
var ErrColumnNotFound = errors.New("column not found")

// Column describes a telemetry column header of the form "Name[Unit]"
type Column struct {
	Name string
	Unit string
	Full string
}

// SplitColumnName splits a header into its name and unit parts. Headers
// without brackets have an empty unit.
func SplitColumnName(full string) Column {
	name, rest, found := strings.Cut(full, "[")
	col := Column{Name: name, Full: full}
	if found {
		col.Unit, _, _ = strings.Cut(rest, "]")
	}
	return col
}

// baseName is the header name without unit, trimmed and lower-cased
func baseName(full string) string {
	return strings.ToLower(strings.TrimSpace(SplitColumnName(full).Name))
}

// AllColumnData describes every column of df in order
func AllColumnData(df dataframe.DataFrame) []Column {
	names := df.Names()
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = SplitColumnName(n)
	}
	return cols
}

// ColumnData finds the column for query. An exact name match wins;
// otherwise the first column whose name appears in query, ignoring case.
func ColumnData(df dataframe.DataFrame, query string) (Column, error) {
	cols := AllColumnData(df)
	for _, c := range cols {
		if c.Name == query {
			return c, nil
		}
	}

	lowered := strings.ToLower(query)
	for _, c := range cols {
		if c.Name != "" && strings.Contains(lowered, strings.ToLower(c.Name)) {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%q: %w", query, ErrColumnNotFound)
}

// ParseNames returns the full headers whose base name equals one of keys,
// ignoring case and surrounding blanks. Results follow key order.
func ParseNames(columns []string, keys ...string) []string {
	var results []string
	for _, key := range keys {
		want := strings.ToLower(strings.TrimSpace(key))
		for _, column := range columns {
			if baseName(column) == want {
				results = append(results, column)
			}
		}
	}
	return results
}

// SignalFromName returns the values of the last column matching name,
// or zeros when nothing matches.
func SignalFromName(df dataframe.DataFrame, name string) []float64 {
	matches := ParseNames(df.Names(), name)
	if len(matches) == 0 {
		return make([]float64, df.Nrow())
	}
	return df.Col(matches[len(matches)-1]).Float()
}

// FormatData collects the signal named x followed by each of ys
func FormatData(df dataframe.DataFrame, x string, ys ...string) [][]float64 {
	res := make([][]float64, 0, len(ys)+1)
	res = append(res, SignalFromName(df, x))
	for _, y := range ys {
		res = append(res, SignalFromName(df, y))
	}
	return res
}

// Floats returns the values of the column with exactly the given header
func Floats(df dataframe.DataFrame, column string) ([]float64, error) {
	for _, n := range df.Names() {
		if n == column {
			return df.Col(column).Float(), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", column), ErrColumnNotFound)
}

// Difference returns signal a minus signal b, element-wise. Both are
// resolved with ColumnData.
func Difference(df dataframe.DataFrame, a, b string) ([]float64, error) {
	colA, err := ColumnData(df, a)
	if err != nil {
		return nil, err
	}
	colB, err := ColumnData(df, b)
	if err != nil {
		return nil, err
	}

	dst := make([]float64, df.Nrow())
	floats.SubTo(dst, df.Col(colA.Full).Float(), df.Col(colB.Full).Float())
	return dst, nil
}
