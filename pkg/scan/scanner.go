// Package scan runs the receipt pipeline: preprocess, recognize, retry with
// a fallback configuration when the text is too short, normalize, extract.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"expenseit/pkg/extract"
	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"
)

// minTextLen is the shortest primary text worth extracting from. Fallback
// text must be longer than this.
const minTextLen = 10

var (
	// ErrNoText is returned when neither recognition pass produced usable text.
	ErrNoText = errors.New("no text recognized")
	// ErrNoFields is returned when extraction found nothing beyond the
	// default currency.
	ErrNoFields = errors.New("no expense fields extracted")
)

// Result is the outcome of one scan.
type Result struct {
	Text         string         `json:"text"`
	Confidence   float64        `json:"confidence"`
	UsedFallback bool           `json:"used_fallback"`
	Preprocessed bool           `json:"preprocessed"`
	Fields       []string       `json:"fields"`
	Record       extract.Record `json:"record"`
}

// Scanner owns the recognizer and bounds how many recognitions run at once.
type Scanner struct {
	rec ocr.Recognizer
	sem *semaphore.Weighted
	log logger.Logger
}

// New returns a Scanner allowing up to concurrency recognitions in flight.
func New(rec ocr.Recognizer, concurrency int, log logger.Logger) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scanner{
		rec: rec,
		sem: semaphore.NewWeighted(int64(concurrency)),
		log: log,
	}
}

// Scan extracts an expense record from an uploaded image.
func (s *Scanner) Scan(ctx context.Context, data []byte, prefs extract.Preferences, progress ocr.ProgressFunc) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrNoText
	}
	original, processed, err := prepare(data)
	if err != nil {
		var de *ocr.DecodeError
		if !errors.As(err, &de) {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("preprocessing skipped, recognizing raw image")
	}

	res := &Result{Preprocessed: processed != nil}
	input := processed
	if input == nil {
		input = original
	}

	primary := ocr.PrimaryRequest()
	primary.Progress = progress
	out, err := s.recognize(ctx, input, primary)
	if err != nil {
		return nil, err
	}
	text := ocr.Normalize(out.Text)
	res.Confidence = out.Confidence
	s.log.Debug().Int("chars", len(text)).Float64("confidence", out.Confidence).Msg("primary pass")

	if utf8.RuneCountInString(text) < minTextLen {
		fallback := ocr.FallbackRequest()
		fallback.Progress = progress
		alt, err := s.recognize(ctx, original, fallback)
		if err != nil {
			return nil, err
		}
		altText := ocr.Normalize(alt.Text)
		s.log.Debug().Int("chars", len(altText)).Float64("confidence", alt.Confidence).Msg("fallback pass")
		if utf8.RuneCountInString(altText) <= minTextLen {
			return nil, ErrNoText
		}
		text = altText
		res.Confidence = alt.Confidence
		res.UsedFallback = true
	}

	res.Text = text
	res.Record = extract.Extract(text, prefs)
	res.Fields = res.Record.PopulatedFields()
	if !hasExpenseFields(res.Fields) {
		return nil, ErrNoFields
	}
	s.log.Info().
		Strs("fields", res.Fields).
		Bool("fallback", res.UsedFallback).
		Str("amount", res.Record.Amount).
		Msg("receipt scanned")
	return res, nil
}

func (s *Scanner) recognize(ctx context.Context, img []byte, req ocr.Request) (ocr.Result, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return ocr.Result{}, fmt.Errorf("wait for recognizer: %w", err)
	}
	defer s.sem.Release(1)
	out, err := s.rec.Recognize(ctx, img, req)
	if err != nil {
		s.log.Error().Err(err).Msg("recognition failed")
		if !errors.Is(err, ocr.ErrRecognition) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", ocr.ErrRecognition, err)
		}
		return ocr.Result{}, err
	}
	return out, nil
}

// prepare returns the image as the recognizer should see it before and after
// preprocessing. Formats the engine cannot read directly, like PDF and HEIC,
// are re-encoded to PNG. When decoding fails only the raw bytes come back,
// along with the *ocr.DecodeError.
func prepare(data []byte) (original, processed []byte, err error) {
	img, format, err := ocr.Decode(data)
	if err != nil {
		return data, nil, err
	}
	original = data
	if format == "pdf" || format == "heic" {
		if original, err = encodePNG(img); err != nil {
			return data, nil, err
		}
	}
	out, err := ocr.Preprocess(img)
	if err != nil {
		return original, nil, &ocr.DecodeError{Format: format, Err: err}
	}
	if processed, err = encodePNG(out); err != nil {
		return original, nil, err
	}
	return original, processed, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// hasExpenseFields reports whether anything beyond the currency was found.
// Currency alone is always present because it falls back to the preference.
func hasExpenseFields(fields []string) bool {
	for _, f := range fields {
		if f != "currency" {
			return true
		}
	}
	return false
}
