// Command debug_preproc writes the image the recognizer would see after
// preprocessing, for eyeballing threshold and scale problems.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	fs := ff.NewFlagSet("debug_preproc")
	var (
		in  = fs.StringLong("file", "", "receipt image to preprocess")
		out = fs.StringLong("out", "", "output PNG (default <file>.pre.png)")
	)
	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: "info", Component: "debug_preproc"})
	log := logger.Get()
	if *in == "" {
		log.Fatal().Msg("--file required")
	}
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".pre.png"
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("read")
	}
	png, err := ocr.PreprocessBytes(data)
	if err != nil {
		log.Fatal().Err(err).Msg("preprocess")
	}
	if err := os.WriteFile(dst, png, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write")
	}
	log.Info().Str("out", dst).Int("bytes", len(png)).Msg("preprocessed image written")
}
