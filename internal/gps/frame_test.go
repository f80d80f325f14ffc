package gps

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracekit/internal/config"
	"tracekit/internal/dataprocessing"
	apperrors "tracekit/internal/errors"
	"tracekit/internal/shared/testutil"
)

func TestRepairFrame(t *testing.T) {
	df, err := dataprocessing.LoadCSV(strings.NewReader(testutil.TraceCSV(10, 5)))
	require.NoError(t, err)

	out, res, err := RepairFrame(context.Background(), df, config.Default().GPS)
	require.NoError(t, err)

	assert.Equal(t, 10, out.Nrow())
	assert.Equal(t, append(df.Names(), config.ReplacedColumn, config.CumulativeColumn), out.Names())
	assert.Equal(t, []Patch{{4, 6}}, res.Patches)

	replaced := out.Col(config.ReplacedColumn)
	for i := 0; i < replaced.Len(); i++ {
		flag, err := replaced.Elem(i).Bool()
		require.NoError(t, err)
		assert.Equal(t, i == 4 || i == 5, flag, "row %d", i)
	}

	lat := out.Col(config.LatitudeColumn).Float()
	assert.InDelta(t, -83+5e-6, lat[5], 1e-9)
	alt := out.Col(config.AltitudeColumn).Float()
	assert.InDelta(t, 205.0, alt[5], 1e-9)
	mph := out.Col(config.SpeedMPHColumn).Float()
	assert.InDelta(t, 36.0, mph[5], 1e-9)

	assert.Equal(t, res.CumulativeDistance, out.Col(config.CumulativeColumn).Float())
	assert.Equal(t, "D", out.Col("Gear[]").Elem(5).String(), "other columns untouched")
}

func TestRepairFrameRerun(t *testing.T) {
	df, err := dataprocessing.LoadCSV(strings.NewReader(testutil.TraceCSV(8)))
	require.NoError(t, err)

	once, _, err := RepairFrame(context.Background(), df, config.Default().GPS)
	require.NoError(t, err)
	twice, res, err := RepairFrame(context.Background(), once, config.Default().GPS)
	require.NoError(t, err)

	assert.Empty(t, res.Patches)
	assert.Equal(t, once.Names(), twice.Names(), "derived columns are replaced, not duplicated")
}

func TestRepairFrameMissingColumn(t *testing.T) {
	df, err := dataprocessing.LoadCSV(strings.NewReader("t[s],GPS_x[°],GPS_y[°]\n0,-83,42\n1,-83,42\n2,-83,42\n"))
	require.NoError(t, err)

	_, _, err = RepairFrame(context.Background(), df, config.Default().GPS)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.ErrorIs(t, err, dataprocessing.ErrColumnNotFound)
}

func TestRepairFrameConfiguredSignals(t *testing.T) {
	df, err := dataprocessing.LoadCSV(strings.NewReader("t[s],GPS_x[°],GPS_y[°]\n0,-83,42\n1,-83,42\n2,-83,42\n"))
	require.NoError(t, err)

	cfg := config.Default().GPS
	cfg.Signals = []string{config.LatitudeColumn, config.LongitudeColumn}

	out, res, err := RepairFrame(context.Background(), df, cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, res.CumulativeDistance)
	assert.Equal(t, 5, out.Ncol())
}

func TestRepairFrameTooShort(t *testing.T) {
	df, err := dataprocessing.LoadCSV(strings.NewReader(testutil.TraceCSV(2)))
	require.NoError(t, err)

	_, _, err = RepairFrame(context.Background(), df, config.Default().GPS)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.ErrorIs(t, err, ErrTraceTooShort)
}
