package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail-capture.toml")
	data := `
[mail-capture]
log_file = "/var/log/capture.log"
capture_file = "/tmp/capture.eml"
capture_format = "mbox"
bounce = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogFile != "/var/log/capture.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
	if cfg.CaptureFile != "/tmp/capture.eml" {
		t.Errorf("capture file = %q", cfg.CaptureFile)
	}
	if cfg.CaptureFormat != FormatMbox {
		t.Errorf("capture format = %q", cfg.CaptureFormat)
	}
	if !cfg.Bounce {
		t.Error("bounce not merged")
	}
	// Unset keys keep their defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not toml ]["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	cfg.LogFile = "/from/file.log"

	cfg = ApplyFlags(cfg, &Flags{
		LogFile:       "/from/flag.log",
		LogLevel:      "debug",
		CaptureFormat: FormatMbox,
		Bounce:        true,
	})

	if cfg.LogFile != "/from/flag.log" {
		t.Errorf("flag should override file value, got %q", cfg.LogFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.CaptureFormat != FormatMbox {
		t.Errorf("capture format = %q", cfg.CaptureFormat)
	}
	if !cfg.Bounce {
		t.Error("bounce flag not applied")
	}
	// Empty flag values never override.
	if cfg.LogEncoding != "UTF-8" {
		t.Errorf("log encoding = %q", cfg.LogEncoding)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MAILCAPTURE_LOG_FILE", "/from/env.log")
	t.Setenv("MAILCAPTURE_LOG_LEVEL", "error")
	t.Setenv("MAILCAPTURE_BOUNCE", "true")
	t.Setenv("MAILCAPTURE_VERBOSE", "not-a-bool")

	cfg := ApplyEnv(Default())
	if cfg.LogFile != "/from/env.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if !cfg.Bounce {
		t.Error("bounce env not applied")
	}
	if cfg.Verbose {
		t.Error("unparseable bool should be ignored")
	}
}

func TestEnvLosesToFlags(t *testing.T) {
	t.Setenv("MAILCAPTURE_LOG_LEVEL", "error")

	cfg := ApplyEnv(Default())
	cfg = ApplyFlags(cfg, &Flags{LogLevel: "debug"})
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want flag to win", cfg.LogLevel)
	}
}
