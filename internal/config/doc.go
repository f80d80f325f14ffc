// Package config provides centralized configuration management for tracekit.
// It loads configuration from multiple sources, validates it, and exposes a
// type-safe struct to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file (TRACEKIT_CONFIG or tracekit.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRACEKIT_<SECTION>_<FIELD>:
//
//	TRACEKIT_PATHS_INPUT_DIR=/data/logs
//	TRACEKIT_GPS_JUMP_THRESHOLD_METERS=1000
//	TRACEKIT_GPS_STRICT_PATCHES=true
//	TRACEKIT_PROCESSING_WORKERS=8
//	TRACEKIT_LOGGING_LEVEL=debug
//
// # Validation
//
// Struct tags are checked with go-playground/validator at load time, so an
// inverted region box or an unknown delta unit fails before any file is read.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests should use config.Default(), which needs no environment.
package config
