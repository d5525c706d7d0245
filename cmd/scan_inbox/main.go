// Command scan_inbox scans a directory of receipt images and writes a JSON
// result next to each one, optionally watching for new files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expenseit/pkg/extract"
	"expenseit/pkg/inbox"
	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"
	"expenseit/pkg/scan"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("scan_inbox")
	var (
		dir         = fs.StringLong("dir", "inbox", "directory to scan for receipt images")
		watch       = fs.BoolLong("watch", "keep watching the directory for new files")
		workers     = fs.IntLong("workers", 0, "worker pool size (default NumCPU)")
		concurrency = fs.IntLong("ocr-concurrency", 2, "maximum concurrent recognitions")
		force       = fs.BoolLong("force", "rescan files that already have a result")
		prefsPath   = fs.StringLong("preferences", "", "JSON preferences file")
		logLevel    = fs.StringLong("log-level", "info", "log level")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("EXPENSEIT")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: *logLevel, Component: "scan_inbox"})
	log := logger.With("inbox")

	prefs := extract.DefaultPreferences()
	if *prefsPath != "" {
		b, err := os.ReadFile(*prefsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read preferences")
		}
		if err := json.Unmarshal(b, &prefs); err != nil {
			log.Fatal().Err(err).Msg("parse preferences")
		}
		if err := prefs.Validate(); err != nil {
			log.Fatal().Err(err).Msg("preferences")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &inbox.Processor{
		Dir:     *dir,
		Scanner: scan.New(ocr.NewTesseract(logger.With("tesseract")), *concurrency, logger.With("scan")),
		Prefs:   func() extract.Preferences { return prefs },
		Workers: *workers,
		Force:   *force,
		Log:     log,
	}
	run := p.Run
	if *watch {
		run = p.Watch
	}
	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("scan inbox")
	}
	st := p.Stats()
	log.Info().Int64("scanned", st.Scanned).Int64("skipped", st.Skipped).Int64("failed", st.Failed).Msg("done")
}
