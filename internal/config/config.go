package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	GPS        GPSConfig        `yaml:"gps" envconfig:"GPS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system locations. InputDir has no implicit
// default; callers pass it explicitly or through the environment.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	PrefsFile string `yaml:"prefs_file" envconfig:"PREFS_FILE"`
}

// GPSConfig holds the trace repair thresholds
type GPSConfig struct {
	JumpThresholdMeters float64  `yaml:"jump_threshold_meters" envconfig:"JUMP_THRESHOLD_METERS" validate:"gt=0"`
	RegionLatMin        float64  `yaml:"region_lat_min" envconfig:"REGION_LAT_MIN"`
	RegionLatMax        float64  `yaml:"region_lat_max" envconfig:"REGION_LAT_MAX" validate:"gtfield=RegionLatMin"`
	RegionLonMin        float64  `yaml:"region_lon_min" envconfig:"REGION_LON_MIN"`
	RegionLonMax        float64  `yaml:"region_lon_max" envconfig:"REGION_LON_MAX" validate:"gtfield=RegionLonMin"`
	DeltaUnits          string   `yaml:"delta_units" envconfig:"DELTA_UNITS" validate:"oneof=degrees radians"`
	StrictPatches       bool     `yaml:"strict_patches" envconfig:"STRICT_PATCHES"`
	LatitudeColumn      string   `yaml:"latitude_column" envconfig:"LATITUDE_COLUMN" validate:"required"`
	LongitudeColumn     string   `yaml:"longitude_column" envconfig:"LONGITUDE_COLUMN" validate:"required"`
	Signals             []string `yaml:"signals" envconfig:"SIGNALS" validate:"min=2"`
}

// ProcessingConfig controls batch processing of trace files
type ProcessingConfig struct {
	Workers    int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	Suffix     string `yaml:"suffix" envconfig:"SUFFIX"`
	Ignore     string `yaml:"ignore" envconfig:"IGNORE"`
	Cascade    bool   `yaml:"cascade" envconfig:"CASCADE"`
	SaveIndex  bool   `yaml:"save_index" envconfig:"SAVE_INDEX"`
	DropEmpty  bool   `yaml:"drop_empty" envconfig:"DROP_EMPTY"`
	ExportXLSX bool   `yaml:"export_xlsx" envconfig:"EXPORT_XLSX"`
}

// TelemetryConfig contains OpenTelemetry settings
type TelemetryConfig struct {
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	MetricsAddr    string  `yaml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

// Load builds the configuration in layers: built-in defaults, then the
// optional YAML file, then environment variables that are actually set.
func Load() (*Config, error) {
	cfg := Default()

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment overlays the file; unset variables leave fields untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalises the logging format
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	// JSON is the only supported log format
	c.Logging.Format = "json"

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		return explicit
	}

	// Check for config file in common locations
	locations := []string{
		"tracekit.yaml",
		"configs/tracekit.yaml",
		"../configs/tracekit.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/tracekit.log",
		},
		GPS: GPSConfig{
			JumpThresholdMeters: DefaultJumpThresholdMeters,
			RegionLatMin:        DefaultRegionLatMin,
			RegionLatMax:        DefaultRegionLatMax,
			RegionLonMin:        DefaultRegionLonMin,
			RegionLonMax:        DefaultRegionLonMax,
			DeltaUnits:          DeltaDegrees,
			LatitudeColumn:      LatitudeColumn,
			LongitudeColumn:     LongitudeColumn,
			Signals:             append([]string(nil), DefaultSignals...),
		},
		Processing: ProcessingConfig{
			Workers:   4,
			Suffix:    DefaultSuffix,
			Ignore:    DefaultSuffix,
			DropEmpty: true,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "stdout",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
