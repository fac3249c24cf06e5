package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"case insensitive", "DEBUG", slog.LevelDebug},
		{"unknown defaults to info", "loud", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestStreamWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&streamWriter{w: &buf, timestamps: true}, slog.LevelInfo))

	logger.Info("hello transcript")
	logger.Error("something failed")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	// Timestamp, level right-aligned to seven columns, message.
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}    INFO hello transcript$`)
	if !re.MatchString(lines[0]) {
		t.Errorf("info line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "   ERROR something failed") {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestStreamWriterWithoutTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&streamWriter{w: &buf}, slog.LevelInfo))

	logger.Info("hello")
	if got := buf.String(); got != "   INFO hello\n" {
		t.Errorf("line = %q", got)
	}
}

func TestLineHandlerLevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&streamWriter{w: &buf}, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug line leaked through an info-level sink")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info line missing")
	}
}

func TestLineHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&streamWriter{w: &buf}, slog.LevelInfo))

	logger.With("run", 7).Info("start", "bounce", true)

	line := buf.String()
	if !strings.Contains(line, "run=7") || !strings.Contains(line, "bounce=true") {
		t.Errorf("attrs missing from %q", line)
	}
}

func TestLineHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&streamWriter{w: &buf}, slog.LevelInfo))

	logger.WithGroup("capture").Info("open", "path", "/tmp/x")
	if !strings.Contains(buf.String(), "capture.path=/tmp/x") {
		t.Errorf("group prefix missing from %q", buf.String())
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	sink, err := New(path, "info", "UTF-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sink.Logger().Info("recorded")
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "   INFO recorded") {
		t.Errorf("log file content = %q", data)
	}
}

func TestNewFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	for i := 0; i < 2; i++ {
		sink, err := New(path, "info", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sink.Logger().Info("entry")
		if err := sink.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "entry"); got != 2 {
		t.Errorf("expected 2 entries across runs, got %d", got)
	}
}

func TestNewFileSinkEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	sink, err := New(path, "info", "ISO-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sink.Logger().Info("café")
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte{'c', 'a', 'f', 0xe9}) {
		t.Errorf("expected latin-1 bytes, got %q", data)
	}
}

func TestNewRejectsUnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	if _, err := New(path, "info", "x-no-such-encoding"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestValidEncoding(t *testing.T) {
	for _, ok := range []string{"", "UTF-8", "utf-8", "ISO-8859-1"} {
		if !ValidEncoding(ok) {
			t.Errorf("ValidEncoding(%q) = false", ok)
		}
	}
	if ValidEncoding("x-no-such-encoding") {
		t.Error("ValidEncoding accepted an unknown label")
	}
}
