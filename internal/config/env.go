package config

import (
	"os"
	"strconv"
)

// ApplyEnv applies environment variable overrides to the configuration.
// Environment variables take precedence over TOML config but are
// overridden by command-line flags.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("MAILCAPTURE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("MAILCAPTURE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAILCAPTURE_LOG_ENCODING"); v != "" {
		cfg.LogEncoding = v
	}
	if v := os.Getenv("MAILCAPTURE_CAPTURE_FILE"); v != "" {
		cfg.CaptureFile = v
	}
	if v := os.Getenv("MAILCAPTURE_CAPTURE_FORMAT"); v != "" {
		cfg.CaptureFormat = v
	}
	if v := os.Getenv("MAILCAPTURE_BOUNCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.Bounce = true
		}
	}
	if v := os.Getenv("MAILCAPTURE_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.Verbose = true
		}
	}
	return cfg
}
