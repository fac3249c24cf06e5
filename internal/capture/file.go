package capture

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-mbox"

	"github.com/infodancer/mail-capture/internal/config"
)

// captureFile is the optional raw-input persistence target. A nil
// receiver means no capture was configured or opening it failed; both
// degrade to no-ops so the transcript keeps flowing.
type captureFile struct {
	w       io.Writer
	closers []io.Closer
	logger  *slog.Logger
	failed  bool
}

// openCaptureFile opens the configured capture destination. An open
// failure is reported at error level and suppresses capture writes for
// the rest of the run.
func openCaptureFile(cfg config.Config, logger *slog.Logger) *captureFile {
	if cfg.CaptureFile == "" {
		return nil
	}
	f, err := os.Create(cfg.CaptureFile)
	if err != nil {
		logger.Error("opening capture file", "path", cfg.CaptureFile, "error", err)
		return nil
	}
	if cfg.CaptureFormat == config.FormatMbox {
		mw := mbox.NewWriter(f)
		w, err := mw.CreateMessage("MAILER-DAEMON", time.Now())
		if err != nil {
			logger.Error("starting mbox capture entry", "path", cfg.CaptureFile, "error", err)
			_ = f.Close()
			return nil
		}
		return &captureFile{w: w, closers: []io.Closer{mw, f}, logger: logger}
	}
	return &captureFile{w: f, closers: []io.Closer{f}, logger: logger}
}

// write persists one raw input line. The first write failure is
// reported and turns the rest of the run into no-ops.
func (c *captureFile) write(line string) {
	if c == nil || c.failed {
		return
	}
	if _, err := io.WriteString(c.w, line); err != nil {
		c.logger.Error("writing capture file", "error", err)
		c.failed = true
	}
}

// close releases the capture file on every exit path; a close failure
// is reported but never aborts anything.
func (c *captureFile) close() {
	if c == nil {
		return
	}
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			c.logger.Error("closing capture file", "error", err)
		}
	}
}
