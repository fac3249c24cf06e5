// Command mail-capture is a mail-delivery pipe target for debugging a
// mail server pipeline. It reads one RFC 5322 message from stdin, dumps
// process diagnostics and a full transcript of the parsed message to a
// log sink, optionally persists the raw input, and exits 0 — or, in
// bounce mode, writes a synthetic non-delivery response to stderr and
// exits 1 so the MTA's error path can be observed too.
//
// Wire it up in /etc/aliases (Postfix local(8)):
//
//	capture: "|/usr/local/bin/mail-capture /tmp/capture.log"
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/infodancer/mail-capture/internal/capture"
	"github.com/infodancer/mail-capture/internal/config"
	"github.com/infodancer/mail-capture/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := config.ParseFlags()
	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mail-capture:", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "mail-capture: invalid configuration:", err)
		return 1
	}

	sink, err := logging.New(cfg.LogFile, cfg.SinkLevel(), cfg.LogEncoding)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mail-capture: opening log sink:", err)
		return 1
	}
	defer func() {
		if err := sink.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "mail-capture: closing log sink:", err)
		}
	}()

	logger := sink.Logger()
	logger.Info("start running", "go", runtime.Version(), "bounce", cfg.Bounce)

	capture.Run(os.Stdin, logger, cfg)

	// Parse and capture failures were logged above; only the bounce
	// setting decides the exit status.
	status := 0
	if cfg.Bounce {
		status = 1
	}
	logger.Info("finished running", "exit_status", status)
	if cfg.Bounce {
		capture.Bounce(os.Stderr)
	}
	return status
}
