package dataprocessing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gopkg.in/yaml.v2"

	"tracekit/internal/config"
	apperrors "tracekit/internal/errors"
)

// Preferences controls column pruning and rounding of processed traces
type Preferences struct {
	Discard NameSet  `json:"discard" yaml:"discard"`
	Units   Accuracy `json:"units" yaml:"units"`
	Names   Accuracy `json:"names" yaml:"names"`
}

// NameSet is a list of column base names. It decodes from a list or from
// an object whose non-null keys are the names.
type NameSet []string

// Accuracy maps a key to a number of decimal places. Null entries are
// dropped on decode.
type Accuracy map[string]int

// UnmarshalJSON implements json.Unmarshaler
func (n *NameSet) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*n = list
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*n = nonNullKeys(obj)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *NameSet) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*n = list
		return nil
	}
	var obj map[string]interface{}
	if err := unmarshal(&obj); err != nil {
		return err
	}
	*n = nonNullKeys(obj)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Accuracy) UnmarshalJSON(b []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = make(Accuracy, len(raw))
	for k, v := range raw {
		if v != nil {
			(*a)[k] = int(*v)
		}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *Accuracy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]*float64
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*a = make(Accuracy, len(raw))
	for k, v := range raw {
		if v != nil {
			(*a)[k] = int(*v)
		}
	}
	return nil
}

func nonNullKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		if v != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadPreferences reads a preferences file. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON.
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read preferences", err).WithContext("path", path)
	}

	var prefs Preferences
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &prefs)
	default:
		err = json.Unmarshal(data, &prefs)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode preferences", err).WithContext("path", path)
	}
	return &prefs, nil
}

// Discard removes the columns listed in prefs. Entries containing "*"
// match base names by prefix and suffix. Index columns are always
// removed; with dropEmpty, columns that are entirely zero go too, except
// the full column names listed in keep.
func Discard(df dataframe.DataFrame, prefs *Preferences, dropEmpty bool, keep ...string) dataframe.DataFrame {
	kept := make(map[string]bool, len(keep))
	for _, column := range keep {
		kept[column] = true
	}
	exact := make(map[string]bool)
	var patterns [][2]string
	if prefs != nil {
		for _, item := range prefs.Discard {
			if prefix, suffix, ok := strings.Cut(item, "*"); ok {
				suffix, _, _ = strings.Cut(suffix, "*")
				patterns = append(patterns, [2]string{prefix, suffix})
				continue
			}
			exact[item] = true
		}
	}

	var drop []string
	for _, column := range df.Names() {
		name := strings.TrimSpace(SplitColumnName(column).Name)
		switch {
		case matchesAny(name, patterns), exact[name]:
			drop = append(drop, column)
		case dropEmpty && !kept[column] && allZero(df.Col(column).Float()):
			drop = append(drop, column)
		case strings.Contains(column, "Unnamed"):
			drop = append(drop, column)
		}
	}

	if len(drop) == 0 {
		return df
	}
	return df.Drop(drop)
}

func matchesAny(name string, patterns [][2]string) bool {
	for _, p := range patterns {
		if len(name) >= len(p[0])+len(p[1]) &&
			strings.HasPrefix(name, p[0]) && strings.HasSuffix(name, p[1]) {
			return true
		}
	}
	return false
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Squish shrinks a trace for storage: the time column is truncated to
// whole seconds, then each numeric column is rounded by its base name
// or, failing that, by its unit.
func Squish(df dataframe.DataFrame, prefs *Preferences) (dataframe.DataFrame, error) {
	t, err := Floats(df, config.TimeColumn)
	if err != nil {
		return df, err
	}

	seconds := make([]int, len(t))
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return df, apperrors.NewParsingError("time column has non-finite values", nil).
				WithContext("row", i)
		}
		seconds[i] = int(v)
	}
	df = df.Mutate(series.New(seconds, series.Int, config.TimeColumn))

	if prefs == nil {
		return df, df.Err
	}

	for _, column := range df.Names() {
		if column == config.TimeColumn {
			continue
		}
		col := SplitColumnName(column)

		places, ok := prefs.Names[strings.TrimSpace(col.Name)]
		if !ok {
			places, ok = prefs.Units[strings.ToLower(col.Unit)]
		}
		if !ok || !isNumeric(df.Col(column)) {
			continue
		}
		df = df.Mutate(series.New(roundAll(df.Col(column).Float(), places), series.Float, column))
	}

	return df, df.Err
}

// RoundCols rounds the named columns to the given number of decimal
// places. Non-numeric columns are logged and left untouched.
func RoundCols(df dataframe.DataFrame, accuracy map[string]int, logger *slog.Logger) dataframe.DataFrame {
	if logger == nil {
		logger = slog.Default()
	}

	for _, column := range df.Names() {
		places, ok := accuracy[column]
		if !ok {
			continue
		}
		s := df.Col(column)
		if !isNumeric(s) {
			logger.Warn("failed to round column, values are not numeric",
				slog.String("column", column),
				slog.String("type", fmt.Sprint(s.Type())))
			continue
		}
		df = df.Mutate(series.New(roundAll(s.Float(), places), series.Float, column))
	}
	return df
}

func isNumeric(s series.Series) bool {
	return s.Type() == series.Float || s.Type() == series.Int
}

func roundAll(values []float64, places int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RoundHalfEven(v, places)
	}
	return out
}

// RoundHalfEven rounds v to the given number of decimal places with ties
// going to the even neighbour. Negative places round left of the point.
func RoundHalfEven(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
