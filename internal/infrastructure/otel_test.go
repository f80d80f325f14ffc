package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracekit/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestInitializeOTelDisabled(t *testing.T) {
	providers, err := InitializeOTel(config.Default().Telemetry, nil, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)

	metrics, err := CreateRepairMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRepair(context.Background(), 4, 1, time.Millisecond)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTelEnabled(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.EnableTracing = true
	cfg.EnableMetrics = true

	var spans bytes.Buffer
	providers, err := InitializeOTel(cfg, &spans, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	require.NotNil(t, providers.MeterProvider)
	require.NotNil(t, providers.PrometheusHTTP)

	ctx, span := providers.Tracer.Start(context.Background(), "repair")
	assert.Len(t, TraceIDFromContext(ctx), 32)
	RecordError(ctx, errors.New("anchor out of range"))
	span.End()

	metrics, err := CreateRepairMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRepair(ctx, 7, 2, 150*time.Millisecond)
	metrics.RecordFile(ctx, nil)
	metrics.RecordFile(ctx, errors.New("boom"))

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "gps_samples_replaced_total")
	assert.Contains(t, body, "gps_patches_total")
	assert.Contains(t, body, "trace_files_processed_total")
	assert.Contains(t, body, "trace_repair_duration_seconds")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, providers.Shutdown(shutdownCtx))
	assert.Contains(t, spans.String(), `"Name":"repair"`)
}

func TestInitializeOTelUnsupportedExporter(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.EnableTracing = true
	cfg.TraceExporter = "jaeger"

	_, err := InitializeOTel(cfg, nil, discardLogger())
	assert.Error(t, err)
}

func TestTraceIDFromContextWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	RecordError(context.Background(), errors.New("ignored"))
}

func TestRepairMetricsNil(t *testing.T) {
	var m *RepairMetrics
	m.RecordRepair(context.Background(), 1, 1, time.Second)
	m.RecordFile(context.Background(), nil)
}
