package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"log/syslog"
	"strings"
	"sync"
	"time"
)

// lineWriter writes one finished log line to a destination.
type lineWriter interface {
	WriteLine(level slog.Level, line string) error
}

// lineHandler is a slog.Handler producing the transcript line format:
// an optional timestamp, the level right-aligned to seven columns, and
// the message. Attributes are appended as key=value pairs. Groups are
// flattened into attribute name prefixes.
type lineHandler struct {
	mu     *sync.Mutex
	lw     lineWriter
	level  slog.Level
	prefix string
	attrs  []slog.Attr
}

func newLineHandler(lw lineWriter, level slog.Level) *lineHandler {
	return &lineHandler{
		mu:    &sync.Mutex{},
		lw:    lw,
		level: level,
	}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, h.prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lw.WriteLine(r.Level, b.String())
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Resolve())
}

// levelName matches the fixed-width level column of the original log
// format ("%7s").
func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// streamWriter writes lines to a file or stream, optionally prefixed
// with a timestamp.
type streamWriter struct {
	w          io.Writer
	timestamps bool
}

func (s *streamWriter) WriteLine(level slog.Level, line string) error {
	var err error
	if s.timestamps {
		_, err = fmt.Fprintf(s.w, "%s %7s %s\n", time.Now().Format("2006-01-02 15:04:05"), levelName(level), line)
	} else {
		_, err = fmt.Fprintf(s.w, "%7s %s\n", levelName(level), line)
	}
	return err
}

// syslogWriter routes lines to the matching syslog severity. The level
// column stays in the message so grepping the mail log works the same
// as grepping a file sink.
type syslogWriter struct {
	w *syslog.Writer
}

func (s *syslogWriter) WriteLine(level slog.Level, line string) error {
	msg := fmt.Sprintf("%7s %s", levelName(level), line)
	switch {
	case level < slog.LevelInfo:
		return s.w.Debug(msg)
	case level < slog.LevelWarn:
		return s.w.Info(msg)
	case level < slog.LevelError:
		return s.w.Warning(msg)
	default:
		return s.w.Err(msg)
	}
}
