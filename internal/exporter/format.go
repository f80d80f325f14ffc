package exporter

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/series"
)

// formatFloat formats a float64 value with the shortest exact representation
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// cellString renders element i of s. Missing values are blank.
func cellString(s series.Series, i int) string {
	e := s.Elem(i)
	if e.IsNA() {
		return ""
	}

	switch s.Type() {
	case series.Float:
		return formatFloat(e.Float())
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return ""
		}
		return formatInt(v)
	case series.Bool:
		v, err := e.Bool()
		if err != nil {
			return ""
		}
		return formatBool(v)
	default:
		return e.String()
	}
}

// cellValue returns element i of s as a spreadsheet value. Missing values
// are nil so the cell stays empty.
func cellValue(s series.Series, i int) interface{} {
	e := s.Elem(i)
	if e.IsNA() {
		return nil
	}

	switch s.Type() {
	case series.Float:
		return e.Float()
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return nil
		}
		return v
	case series.Bool:
		v, err := e.Bool()
		if err != nil {
			return nil
		}
		return v
	default:
		return e.String()
	}
}
