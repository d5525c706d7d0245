package extract

import (
	"strings"
	"unicode/utf8"
)

// Context radii, in characters, around a match.
const (
	amountContextRadius = 20
	cardContextRadius   = 50
)

// splitLines trims every line and drops the empty ones.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// window returns up to before runes preceding the byte offset at and up to
// after runes starting at it.
func window(text string, at, before, after int) string {
	start := at
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := at
	for i := 0; i < after && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[start:end]
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
