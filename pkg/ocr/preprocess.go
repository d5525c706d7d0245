package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// targetSize is the edge length the longer side is scaled towards.
	targetSize      = 2000
	gamma           = 0.7
	binaryThreshold = 128
)

// Preprocess flattens img onto white, rescales it so that it fits a
// 2000x2000 box and binarizes it after a gamma lift. Small images are
// scaled up as well. img is never modified.
func Preprocess(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	s := math.Min(float64(targetSize)/float64(w), float64(targetSize)/float64(h))
	nw := max(1, int(math.Floor(float64(w)*s)))
	nh := max(1, int(math.Floor(float64(h)*s)))

	flat := imaging.New(w, h, color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	scaled := imaging.Resize(flat, nw, nh, imaging.Lanczos)

	return imaging.AdjustFunc(scaled, binarizePixel), nil
}

// binarizePixel maps a pixel to black or white by its gamma-lifted luma.
func binarizePixel(c color.NRGBA) color.NRGBA {
	gray := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	enhanced := math.Pow(gray/255, gamma) * 255
	var v uint8
	if enhanced > binaryThreshold {
		v = 255
	}
	return color.NRGBA{R: v, G: v, B: v, A: c.A}
}

// PreprocessBytes decodes data, preprocesses it and returns a PNG. A
// *DecodeError means the bytes should be recognized as they are.
func PreprocessBytes(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := Preprocess(img)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
