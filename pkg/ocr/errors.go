package ocr

import (
	"errors"
	"fmt"
)

// ErrRecognition is returned when the OCR engine fails. No retry is attempted.
var ErrRecognition = errors.New("recognition failed")

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("empty image")

// DecodeError reports image bytes that could not be decoded. Callers may
// fall back to recognizing the raw bytes.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
