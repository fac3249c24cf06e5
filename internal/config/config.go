// Package config provides configuration management for mail-capture.
// Values resolve in order: defaults, TOML file, environment, flags.
package config

import (
	"fmt"

	"github.com/infodancer/mail-capture/internal/logging"
)

// Capture file formats.
const (
	// FormatRaw writes the input verbatim.
	FormatRaw = "raw"
	// FormatMbox frames the input as a single mbox entry.
	FormatMbox = "mbox"
)

// FileConfig is the top-level wrapper for the shared configuration file,
// so mail-capture can live in the same file as the rest of the mail
// stack.
type FileConfig struct {
	MailCapture Config `toml:"mail-capture"`
}

// Config holds the complete mail-capture configuration.
type Config struct {
	// LogFile is the primary log destination: empty selects the local
	// syslog, "-" selects stderr, anything else is a file path.
	LogFile string `toml:"log_file"`
	// LogLevel is the sink threshold (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
	// LogEncoding is the text encoding for file log destinations.
	LogEncoding string `toml:"log_encoding"`
	// CaptureFile, when set, receives every raw input line as it is
	// read, independent of parsing success.
	CaptureFile string `toml:"capture_file"`
	// CaptureFormat selects raw or mbox framing for the capture file.
	CaptureFormat string `toml:"capture_format"`
	// Bounce makes the process emit a synthetic non-delivery response
	// and exit non-zero after processing.
	Bounce bool `toml:"bounce"`
	// Verbose lowers the sink threshold to debug.
	Verbose bool `toml:"verbose"`
}

// Default returns a Config with sensible default values.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LogEncoding:   "UTF-8",
		CaptureFormat: FormatRaw,
	}
}

// SinkLevel returns the effective log sink threshold.
func (c *Config) SinkLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}

// Validate checks that the configuration is valid and returns an error
// if not.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	switch c.CaptureFormat {
	case FormatRaw, FormatMbox:
	default:
		return fmt.Errorf("invalid capture_format %q (valid: %s, %s)", c.CaptureFormat, FormatRaw, FormatMbox)
	}

	if !logging.ValidEncoding(c.LogEncoding) {
		return fmt.Errorf("invalid log_encoding %q (must be an IANA charset name)", c.LogEncoding)
	}

	return nil
}
