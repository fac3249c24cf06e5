package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogFile != "" {
		t.Errorf("default log destination should be syslog (empty), got %q", cfg.LogFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
	if cfg.LogEncoding != "UTF-8" {
		t.Errorf("default log encoding = %q", cfg.LogEncoding)
	}
	if cfg.CaptureFormat != FormatRaw {
		t.Errorf("default capture format = %q", cfg.CaptureFormat)
	}
	if cfg.Bounce {
		t.Error("bounce should default to off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"mbox format", func(c *Config) { c.CaptureFormat = FormatMbox }, false},
		{"bad format", func(c *Config) { c.CaptureFormat = "maildir" }, true},
		{"warn level", func(c *Config) { c.LogLevel = "warn" }, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"latin-1 encoding", func(c *Config) { c.LogEncoding = "ISO-8859-1" }, false},
		{"bad encoding", func(c *Config) { c.LogEncoding = "x-no-such-encoding" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSinkLevel(t *testing.T) {
	cfg := Default()
	if cfg.SinkLevel() != "info" {
		t.Errorf("sink level = %q", cfg.SinkLevel())
	}
	cfg.Verbose = true
	if cfg.SinkLevel() != "debug" {
		t.Errorf("verbose sink level = %q", cfg.SinkLevel())
	}
}
