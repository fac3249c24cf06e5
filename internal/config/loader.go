package config

import (
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Flags holds command-line flag values.
type Flags struct {
	ConfigPath    string
	LogFile       string
	LogLevel      string
	LogEncoding   string
	CaptureFile   string
	CaptureFormat string
	Bounce        bool
	Verbose       bool
}

// ParseFlags parses command-line flags and returns a Flags struct. A
// trailing positional argument is accepted as the log file path, the
// way the pipe target is traditionally written in /etc/aliases:
//
//	capture: "|/usr/local/bin/mail-capture /tmp/capture.log"
func ParseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "./mail-capture.toml", "Path to configuration file")
	flag.StringVar(&f.LogFile, "log-file", "", "Log destination (empty: syslog, -: stderr, otherwise a file path)")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.LogEncoding, "log-encoding", "", "Text encoding for file log destinations")
	flag.StringVar(&f.CaptureFile, "capture-file", "", "Store raw input to the specified file")
	flag.StringVar(&f.CaptureFormat, "capture-format", "", "Capture file format (raw or mbox)")
	flag.BoolVar(&f.Bounce, "bounce", false, "Bounce the mail after processing")
	flag.BoolVar(&f.Verbose, "verbose", false, "Show debug log")

	flag.Parse()

	if flag.NArg() > 0 {
		f.LogFile = flag.Arg(0)
	}
	return f
}

// Load parses a TOML configuration file and returns the Config. If the
// file does not exist, returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig FileConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	return mergeConfig(cfg, fileConfig.MailCapture), nil
}

// ApplyFlags merges command-line flag values into the config. Non-zero
// flag values override config file and environment values.
func ApplyFlags(cfg Config, f *Flags) Config {
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogEncoding != "" {
		cfg.LogEncoding = f.LogEncoding
	}
	if f.CaptureFile != "" {
		cfg.CaptureFile = f.CaptureFile
	}
	if f.CaptureFormat != "" {
		cfg.CaptureFormat = f.CaptureFormat
	}
	if f.Bounce {
		cfg.Bounce = true
	}
	if f.Verbose {
		cfg.Verbose = true
	}
	return cfg
}

// LoadWithFlags loads configuration from the path specified in flags,
// applies environment overrides, then applies flag overrides.
func LoadWithFlags(f *Flags) (Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}
	cfg = ApplyEnv(cfg)
	return ApplyFlags(cfg, f), nil
}

// mergeConfig merges non-zero values from src into dst.
func mergeConfig(dst, src Config) Config {
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogEncoding != "" {
		dst.LogEncoding = src.LogEncoding
	}
	if src.CaptureFile != "" {
		dst.CaptureFile = src.CaptureFile
	}
	if src.CaptureFormat != "" {
		dst.CaptureFormat = src.CaptureFormat
	}
	if src.Bounce {
		dst.Bounce = true
	}
	if src.Verbose {
		dst.Verbose = true
	}
	return dst
}
