package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const maxVATRate = 50

var vatMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)vat[:\s]*(\d+(?:\.\d{1,2})?%?)`),
	regexp.MustCompile(`(?i)tax[:\s]*(\d+(?:\.\d{1,2})?%?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d{1,2})?%)\s*vat`),
}

// FindVATRate returns the first VAT or tax rate in [0, 50]. Each pattern
// contributes only its first match.
func FindVATRate(text string) (float64, bool) {
	for _, re := range vatMatchers {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "%"), 64)
		if err == nil && v >= 0 && v <= maxVATRate {
			return v, true
		}
	}
	return 0, false
}
