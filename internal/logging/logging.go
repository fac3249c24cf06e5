// Package logging builds the primary log sink for a capture run. The
// destination is chosen the way the original pipe convention expects:
// an empty path selects the local syslog, "-" selects stderr, and
// anything else is a file path. File sinks can be written in a
// configurable text encoding.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"log/syslog"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Stderr is the log destination value selecting the process's own
// standard error stream.
const Stderr = "-"

// Sink is an open log destination. Close must be called exactly once
// when the run is over; it flushes any encoder state and closes the
// underlying file or syslog connection.
type Sink struct {
	logger *slog.Logger
	closer io.Closer
}

// New opens the sink for the given destination, level and text encoding.
// The encoding only applies to file destinations.
func New(dest, level, encoding string) (*Sink, error) {
	lvl := parseLevel(level)

	switch dest {
	case "":
		w, err := syslog.New(syslog.LOG_MAIL|syslog.LOG_INFO, "mail-capture")
		if err != nil {
			return nil, fmt.Errorf("connecting to syslog: %w", err)
		}
		// Syslog supplies its own timestamp, so the handler only
		// prepends the level.
		h := newLineHandler(&syslogWriter{w: w}, lvl)
		return &Sink{logger: slog.New(h), closer: w}, nil
	case Stderr:
		h := newLineHandler(&streamWriter{w: os.Stderr, timestamps: true}, lvl)
		return &Sink{logger: slog.New(h), closer: nopCloser{}}, nil
	default:
		f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer, err := encodedWriter(f, encoding)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		h := newLineHandler(&streamWriter{w: w, timestamps: true}, lvl)
		return &Sink{logger: slog.New(h), closer: closer}, nil
	}
}

// Logger returns the slog.Logger writing to this sink.
func (s *Sink) Logger() *slog.Logger {
	return s.logger
}

// Close releases the sink.
func (s *Sink) Close() error {
	return s.closer.Close()
}

// encodedWriter wraps a log file with a text encoder when the configured
// encoding is anything other than UTF-8.
func encodedWriter(f *os.File, encoding string) (io.Writer, io.Closer, error) {
	if isUTF8(encoding) {
		return f, f, nil
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil || enc == nil {
		return nil, nil, fmt.Errorf("unsupported log encoding %q", encoding)
	}
	tw := transform.NewWriter(f, enc.NewEncoder())
	return tw, multiCloser{tw, f}, nil
}

func isUTF8(encoding string) bool {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// ValidEncoding reports whether the given IANA encoding label can be
// used for a log file.
func ValidEncoding(encoding string) bool {
	if isUTF8(encoding) {
		return true
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	return err == nil && enc != nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiCloser closes in order, keeping the first error.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
