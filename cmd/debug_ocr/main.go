// Command debug_ocr runs the full scan pipeline on one file and prints the
// result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"expenseit/pkg/extract"
	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"
	"expenseit/pkg/scan"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	fs := ff.NewFlagSet("debug_ocr")
	var (
		in         = fs.StringLong("file", "", "receipt image to scan")
		dateFormat = fs.StringLong("date-format", string(extract.DayMonthYear), "preferred date format")
		currency   = fs.StringLong("currency", "USD", "default currency")
		raw        = fs.BoolLong("raw", "print the raw recognizer output too")
	)
	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: "debug", Component: "debug_ocr"})
	log := logger.Get()
	if *in == "" {
		log.Fatal().Msg("--file required")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("read")
	}
	prefs := extract.DefaultPreferences()
	prefs.DateFormat = extract.DateFormat(*dateFormat)
	prefs.DefaultCurrency = *currency
	if err := prefs.Validate(); err != nil {
		log.Fatal().Err(err).Msg("preferences")
	}

	rec := ocr.NewTesseract(logger.With("tesseract"))
	ctx := context.Background()
	if *raw {
		out, err := rec.Recognize(ctx, data, ocr.PrimaryRequest())
		if err != nil {
			log.Fatal().Err(err).Msg("recognize")
		}
		fmt.Printf("--- raw (confidence %.1f) ---\n%s\n--- normalized ---\n%s\n", out.Confidence, out.Text, ocr.Normalize(out.Text))
	}

	res, err := scan.New(rec, 1, logger.With("scan")).Scan(ctx, data, prefs, func(status string, progress float64) {
		log.Debug().Str("status", status).Float64("progress", progress).Msg("ocr")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scan")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}
