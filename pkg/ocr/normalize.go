package ocr

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// confusionRadius is how many characters on each side decide whether an
// ambiguous glyph sits in a number or a word.
const confusionRadius = 3

var (
	// A lone 5, S or E in front of an amount is a misread currency sign.
	looseCurrencyRE = regexp.MustCompile(`(?m)(^|\s)([5SE])([ \t]+\d+[.,]\d{2})`)
	// An S or E glued to the front of a number, outside a word.
	gluedCurrencyRE = regexp.MustCompile(`(^|[^\p{L}\p{N}_])([SE])(\d)`)
	splitDecimalRE  = regexp.MustCompile(`(\d)[ \t](\d{2})\b`)
	thousandsRE     = regexp.MustCompile(`(\d),(\d{3})\b`)
)

var currencyFor = map[string]string{"5": "$", "S": "$", "E": "€"}

// Normalize cleans raw OCR output: full-width forms are folded, digit and
// letter confusions are fixed from their neighbours, misread currency signs
// and split decimals are repaired, and whitespace is tidied. Line breaks are
// kept. Passes repeat until the text is stable, so Normalize is idempotent.
// Every rewrite only moves glyphs towards digits, signs or joined decimals,
// so the loop ends.
func Normalize(raw string) string {
	t := tidyWhitespace(norm.NFKC.String(raw))
	for {
		next := normalizeRound(t)
		if next == t {
			return t
		}
		t = next
	}
}

func normalizeRound(t string) string {
	t = fixConfusions(t)
	t = repairCurrency(t)
	t = repairDecimals(t)
	return tidyWhitespace(t)
}

// fixConfusions rewrites O/0 and I/l/| by looking at the surrounding
// characters of the input. The centre character is part of its own window.
func fixConfusions(t string) string {
	in := []rune(t)
	out := make([]rune, len(in))
	copy(out, in)
	for i, r := range in {
		switch r {
		case '0', 'O':
			digit, letter := neighbours(in, i)
			if digit {
				out[i] = '0'
			} else if letter {
				out[i] = 'O'
			}
		case '1', 'I', 'l', '|':
			if digit, _ := neighbours(in, i); digit {
				out[i] = '1'
			}
		}
	}
	return string(out)
}

func neighbours(rs []rune, i int) (digit, letter bool) {
	lo := max(0, i-confusionRadius)
	hi := min(len(rs), i+confusionRadius+1)
	for _, r := range rs[lo:hi] {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLetter(r):
			letter = true
		}
	}
	return digit, letter
}

func repairCurrency(t string) string {
	t = looseCurrencyRE.ReplaceAllStringFunc(t, func(m string) string {
		g := looseCurrencyRE.FindStringSubmatch(m)
		return g[1] + currencyFor[g[2]] + g[3]
	})
	return gluedCurrencyRE.ReplaceAllStringFunc(t, func(m string) string {
		g := gluedCurrencyRE.FindStringSubmatch(m)
		return g[1] + currencyFor[g[2]] + g[3]
	})
}

// repairDecimals joins "12 50" into "12.50" and drops thousands commas.
func repairDecimals(t string) string {
	for {
		next := splitDecimalRE.ReplaceAllString(t, "$1.$2")
		next = thousandsRE.ReplaceAllString(next, "$1$2")
		if next == t {
			return t
		}
		t = next
	}
}

// tidyWhitespace collapses horizontal whitespace, trims every line and
// drops blank ones.
func tidyWhitespace(t string) string {
	lines := strings.Split(t, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
