package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, 1000.0, cfg.GPS.JumpThresholdMeters)
				assert.Equal(t, -170.0, cfg.GPS.RegionLatMin)
				assert.Equal(t, -65.0, cfg.GPS.RegionLatMax)
				assert.Equal(t, 25.0, cfg.GPS.RegionLonMin)
				assert.Equal(t, 70.0, cfg.GPS.RegionLonMax)
				assert.Equal(t, DeltaDegrees, cfg.GPS.DeltaUnits)
				assert.False(t, cfg.GPS.StrictPatches)
				assert.Equal(t, DefaultSignals, cfg.GPS.Signals)
				assert.Equal(t, 4, cfg.Processing.Workers)
				assert.Equal(t, "_Filtered", cfg.Processing.Suffix)
				assert.Empty(t, cfg.Paths.InputDir, "input dir must be injected, never implied")
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"TRACEKIT_PATHS_INPUT_DIR":           "/data/logs",
				"TRACEKIT_GPS_STRICT_PATCHES":        "true",
				"TRACEKIT_GPS_JUMP_THRESHOLD_METERS": "250",
				"TRACEKIT_PROCESSING_WORKERS":        "8",
				"TRACEKIT_LOGGING_LEVEL":             "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/logs", cfg.Paths.InputDir)
				assert.True(t, cfg.GPS.StrictPatches)
				assert.Equal(t, 250.0, cfg.GPS.JumpThresholdMeters)
				assert.Equal(t, 8, cfg.Processing.Workers)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "yaml file fills values left at defaults",
			fileContent: `
paths:
  input_dir: /srv/traces
gps:
  delta_units: radians
  strict_patches: true
processing:
  workers: 2
  cascade: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/traces", cfg.Paths.InputDir)
				assert.Equal(t, DeltaRadians, cfg.GPS.DeltaUnits)
				assert.True(t, cfg.GPS.StrictPatches)
				assert.Equal(t, 2, cfg.Processing.Workers)
				assert.True(t, cfg.Processing.Cascade)
			},
		},
		{
			name: "yaml gps section",
			fileContent: `
gps:
  jump_threshold_meters: 500
  region_lat_min: -180
  region_lat_max: -60
  region_lon_min: 20
  region_lon_max: 75
  latitude_column: Lat[deg]
  longitude_column: Lon[deg]
  signals: [Lat[deg], Lon[deg]]
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 500.0, cfg.GPS.JumpThresholdMeters)
				assert.Equal(t, -180.0, cfg.GPS.RegionLatMin)
				assert.Equal(t, -60.0, cfg.GPS.RegionLatMax)
				assert.Equal(t, 20.0, cfg.GPS.RegionLonMin)
				assert.Equal(t, 75.0, cfg.GPS.RegionLonMax)
				assert.Equal(t, "Lat[deg]", cfg.GPS.LatitudeColumn)
				assert.Equal(t, "Lon[deg]", cfg.GPS.LongitudeColumn)
				assert.Equal(t, []string{"Lat[deg]", "Lon[deg]"}, cfg.GPS.Signals)
				assert.Equal(t, DeltaDegrees, cfg.GPS.DeltaUnits, "keys absent from the file keep defaults")
			},
		},
		{
			name: "yaml processing section",
			fileContent: `
processing:
  suffix: _Clean
  ignore: _Clean
  save_index: true
  drop_empty: false
  export_xlsx: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "_Clean", cfg.Processing.Suffix)
				assert.Equal(t, "_Clean", cfg.Processing.Ignore)
				assert.True(t, cfg.Processing.SaveIndex)
				assert.False(t, cfg.Processing.DropEmpty)
				assert.True(t, cfg.Processing.ExportXLSX)
				assert.Equal(t, 4, cfg.Processing.Workers)
			},
		},
		{
			name: "yaml telemetry and logging sections",
			fileContent: `
logging:
  level: warn
  output: both
telemetry:
  enable_tracing: true
  trace_exporter: none
  metric_exporter: none
  sample_ratio: 0.25
  metrics_addr: ":9464"
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.True(t, cfg.Telemetry.EnableTracing)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "none", cfg.Telemetry.MetricExporter)
				assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
				assert.Equal(t, ":9464", cfg.Telemetry.MetricsAddr)
			},
		},
		{
			name: "set environment variable overrides a file value",
			env: map[string]string{
				"TRACEKIT_PROCESSING_DROP_EMPTY": "true",
				"TRACEKIT_GPS_REGION_LAT_MIN":    "-175",
			},
			fileContent: `
gps:
  region_lat_min: -180
processing:
  drop_empty: false
  suffix: _Clean
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Processing.DropEmpty)
				assert.Equal(t, -175.0, cfg.GPS.RegionLatMin)
				assert.Equal(t, "_Clean", cfg.Processing.Suffix)
			},
		},
		{
			name: "environment wins over file",
			env: map[string]string{
				"TRACEKIT_PATHS_INPUT_DIR": "/from/env",
			},
			fileContent: "paths:\n  input_dir: /from/file\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/from/env", cfg.Paths.InputDir)
			},
		},
		{
			name: "unknown delta unit",
			env: map[string]string{
				"TRACEKIT_GPS_DELTA_UNITS": "furlongs",
			},
			wantErr: true,
		},
		{
			name: "too many workers",
			env: map[string]string{
				"TRACEKIT_PROCESSING_WORKERS": "500",
			},
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			fileContent: "gps: [unterminated",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPrefix+"_CONFIG", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if tt.fileContent != "" {
				path := filepath.Join(t.TempDir(), "tracekit.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
				t.Setenv(EnvPrefix+"_CONFIG", path)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name: "inverted latitude box",
			mutate: func(c *Config) {
				c.GPS.RegionLatMin, c.GPS.RegionLatMax = -65, -170
			},
			wantErr: true,
		},
		{
			name: "inverted longitude box",
			mutate: func(c *Config) {
				c.GPS.RegionLonMin, c.GPS.RegionLonMax = 70, 25
			},
			wantErr: true,
		},
		{
			name: "zero jump threshold",
			mutate: func(c *Config) {
				c.GPS.JumpThresholdMeters = 0
			},
			wantErr: true,
		},
		{
			name: "single signal",
			mutate: func(c *Config) {
				c.GPS.Signals = []string{LatitudeColumn}
			},
			wantErr: true,
		},
		{
			name: "bad log output",
			mutate: func(c *Config) {
				c.Logging.Output = "syslog"
			},
			wantErr: true,
		},
		{
			name: "text format is normalised",
			mutate: func(c *Config) {
				c.Logging.Format = "text"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "json", cfg.Logging.Format)
		})
	}
}

func TestDefaultSignalsNotShared(t *testing.T) {
	cfg := Default()
	cfg.GPS.Signals[0] = "mutated"
	assert.Equal(t, LatitudeColumn, DefaultSignals[0])
}
