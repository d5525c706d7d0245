package ocr

import (
	"context"
	"fmt"

	"expenseit/pkg/logger"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with a fresh gosseract client per call.
type Tesseract struct {
	log logger.Logger
}

// NewTesseract returns a Tesseract recognizer.
func NewTesseract(log logger.Logger) *Tesseract {
	return &Tesseract{log: log}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	req.report("initializing", 0)

	client := gosseract.NewClient()
	defer client.Close()

	if len(req.Languages) > 0 {
		if err := client.SetLanguage(req.Languages...); err != nil {
			return Result{}, fmt.Errorf("%w: set language: %w", ErrRecognition, err)
		}
	}
	if req.Whitelist != "" {
		if err := client.SetWhitelist(req.Whitelist); err != nil {
			return Result{}, fmt.Errorf("%w: set whitelist: %w", ErrRecognition, err)
		}
	}
	if err := client.SetPageSegMode(req.PageSegMode); err != nil {
		return Result{}, fmt.Errorf("%w: set page segmentation: %w", ErrRecognition, err)
	}
	for k, v := range req.Variables {
		if err := client.SetVariable(k, v); err != nil {
			return Result{}, fmt.Errorf("%w: set %s: %w", ErrRecognition, k, err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("%w: load image: %w", ErrRecognition, err)
	}

	req.report("recognizing text", 0.5)
	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRecognition, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	conf := meanWordConfidence(client)
	t.log.Debug().
		Int("chars", len(text)).
		Float64("confidence", conf).
		Str("snippet", snippet(text, 120)).
		Msg("tesseract result")
	req.report("done", 1)
	return Result{Text: text, Confidence: conf}, nil
}

// meanWordConfidence averages the per-word confidences. Zero when the
// engine reports no words.
func meanWordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}
