package extract

import (
	"regexp"
	"strings"
)

const minReferenceLen = 3

var referenceMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bproject[:\s#]*([a-z0-9\-_]+)`),
	regexp.MustCompile(`(?i)\bref(?:erence)?[:\s#]*([a-z0-9\-_]+)`),
	regexp.MustCompile(`(?i)\border[:\s#]*([a-z0-9\-_]+)`),
	regexp.MustCompile(`(?i)#([a-z0-9\-_]+)`),
}

// FindReference returns the first project, reference or order token of at
// least three characters.
func FindReference(text string) (string, bool) {
	for _, re := range referenceMatchers {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if runeLen(m[1]) >= minReferenceLen {
				return m[1], true
			}
		}
	}
	return "", false
}

const minNoteLen = 20

var noteExclusions = []string{"total", "amount", "date"}

// pickNotes returns the first long descriptive line that is not the merchant.
func pickNotes(lines []string, merchant string) string {
next:
	for _, l := range lines {
		if runeLen(l) <= minNoteLen || l == merchant || (l[0] >= '0' && l[0] <= '9') {
			continue
		}
		lower := strings.ToLower(l)
		for _, w := range noteExclusions {
			if strings.Contains(lower, w) {
				continue next
			}
		}
		return l
	}
	return ""
}
