package ocr

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// ProgressFunc receives recognition status updates; progress is in [0, 1].
type ProgressFunc func(status string, progress float64)

// Request configures one recognition call.
type Request struct {
	Languages   []string
	Whitelist   string
	PageSegMode gosseract.PageSegMode
	Variables   map[gosseract.SettableVariable]string
	Progress    ProgressFunc
}

// Result is the recognizer output. Confidence is on a 0-100 scale.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer turns an encoded image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, req Request) (Result, error)
}

const (
	primaryWhitelist  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,:-$/€£¥₪*()&% "
	fallbackWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,:-$/€£¥₪ "
)

// PrimaryRequest is the configuration used on the preprocessed image.
func PrimaryRequest() Request {
	return Request{
		Languages:   []string{"eng", "heb", "fra", "spa", "deu"},
		Whitelist:   primaryWhitelist,
		PageSegMode: gosseract.PSM_AUTO,
		Variables: map[gosseract.SettableVariable]string{
			"preserve_interword_spaces":         "1",
			"classify_enable_learning":          "1",
			"textord_really_old_xheight":        "1",
			"textord_min_xheight":               "7",
			"textord_tabfind_find_tables":       "1",
			"segment_penalty_dict_frequent_word": "1",
			"segment_penalty_dict_case_ok":      "1",
			"tessedit_reject_bad_qual_wds":      "1",
			"tessedit_preserve_blk_wd_gaps":     "1",
			"tessedit_preserve_row_wd_gaps":     "1",
		},
	}
}

// FallbackRequest is the narrower configuration tried on the unprocessed
// image when the primary pass yields too little text.
func FallbackRequest() Request {
	return Request{
		Languages:   []string{"eng"},
		Whitelist:   fallbackWhitelist,
		PageSegMode: gosseract.PSM_SINGLE_BLOCK,
	}
}

func (r Request) report(status string, progress float64) {
	if r.Progress != nil {
		r.Progress(status, progress)
	}
}
