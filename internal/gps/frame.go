package gps

import (
	"context"
	"errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"tracekit/internal/config"
	"tracekit/internal/dataprocessing"
	apperrors "tracekit/internal/errors"
)

// RepairFrame repairs the GPS signals of df with a pipeline built from cfg.
// See Pipeline.RepairFrame.
func RepairFrame(ctx context.Context, df dataframe.DataFrame, cfg config.GPSConfig) (dataframe.DataFrame, *Result, error) {
	return NewPipeline(OptionsFromConfig(cfg)).RepairFrame(ctx, df)
}

// RepairFrame reads the configured signals from df, repairs them and
// returns a frame with the repaired columns replaced in place plus the
// replaced flag and cumulative distance columns. A missing signal column
// is a NOT_FOUND error.
func (p *Pipeline) RepairFrame(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, *Result, error) {
	t, err := p.traceFromFrame(df)
	if err != nil {
		return df, nil, err
	}

	res, err := p.Repair(ctx, t)
	if err != nil {
		return df, nil, classifyError(err)
	}

	out := df
	for _, name := range t.Names() {
		out = out.Mutate(series.New(res.Signals[name], series.Float, name))
	}
	out = out.Mutate(series.New(res.Replaced, series.Bool, config.ReplacedColumn))
	out = out.Mutate(series.New(res.CumulativeDistance, series.Float, config.CumulativeColumn))
	if out.Err != nil {
		return df, nil, apperrors.NewRepairError("failed to update frame", out.Err)
	}
	return out, res, nil
}

func (p *Pipeline) traceFromFrame(df dataframe.DataFrame) (*Trace, error) {
	t := &Trace{
		Latitude:  p.opts.LatitudeColumn,
		Longitude: p.opts.LongitudeColumn,
		Signals:   make(map[string][]float64),
	}
	if t.Latitude == "" {
		t.Latitude = config.LatitudeColumn
	}
	if t.Longitude == "" {
		t.Longitude = config.LongitudeColumn
	}

	names := append([]string{t.Latitude, t.Longitude}, p.opts.Signals...)
	for _, name := range names {
		if _, ok := t.Signals[name]; ok {
			continue
		}
		values, err := dataprocessing.Floats(df, name)
		if err != nil {
			return nil, err
		}
		t.Add(name, values)
	}
	return t, nil
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, ErrTraceTooShort), errors.Is(err, ErrSignalLength):
		return apperrors.NewAppValidationError("invalid trace", err)
	default:
		return apperrors.NewRepairError("trace repair failed", err)
	}
}
