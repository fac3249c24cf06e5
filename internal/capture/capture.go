// Package capture orchestrates a single capture run: dump diagnostics,
// echo and persist the raw input while feeding the parser, then render
// the message transcript. Nothing in here decides the process exit
// status; failures are logged and swallowed so the bounce-vs-success
// decision stays with the caller.
package capture

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/infodancer/mail-capture/internal/config"
	"github.com/infodancer/mail-capture/internal/message"
	"github.com/infodancer/mail-capture/internal/sysinfo"
	"github.com/infodancer/mail-capture/internal/transcript"
)

// Run executes one capture over r. Every line read is written to the
// capture file (when configured) and echoed to the log before it is fed
// to the parser, so the raw input survives even when parsing does not.
func Run(r io.Reader, logger *slog.Logger, cfg config.Config) {
	logger.Info("Showing system-info:")
	for _, line := range sysinfo.Lines() {
		logger.Info(line)
	}
	logger.Info("Showing environment variables:")
	for _, line := range sysinfo.EnvironLines() {
		logger.Info(line)
	}

	out := openCaptureFile(cfg, logger)
	defer out.close()

	parser := message.NewParser()
	logger.Info("stdin:")
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			out.write(line)
			parser.Feed(line)
			logger.Info(">>> " + strings.TrimRight(line, " \t\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error("reading stdin", "error", err)
			return
		}
	}

	msg, err := parser.Close()
	if err != nil {
		logger.Error("parsing message", "error", err)
		return
	}
	for line, err := range transcript.Render(transcript.Wrap(msg), "", transcript.DefaultIndent, transcript.RootLabel) {
		if err != nil {
			logger.Error("rendering message transcript", "error", err)
			return
		}
		logger.Info(line)
	}
}
