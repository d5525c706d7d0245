package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// maxMerchantLines is how many leading lines compete for the merchant name.
const maxMerchantLines = 10

var (
	boilerplatePrefixRE = regexp.MustCompile(`(?i)^(receipt|invoice|bill|order|transaction|payment|total|subtotal|tax|date|time|address|phone|tel|www|http)`)
	pureNumberRE        = regexp.MustCompile(`^\d+$`)
	numberPunctRE       = regexp.MustCompile(`^[\d\s\-()]+$`)
	slashDateRE         = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	clockTimeRE         = regexp.MustCompile(`\d{1,2}:\d{2}`)
	upperStartRE        = regexp.MustCompile(`^[A-Z]`)
	upperRunRE          = regexp.MustCompile(`[A-Z]{2,}`)
	businessWordRE      = regexp.MustCompile(`(?i)\b(restaurant|cafe|store|shop|inc|ltd|llc|corp)\b`)
)

// ScoreMerchantLine rates how much a line at the given position looks like
// a business name. Zero means the line is disqualified.
func ScoreMerchantLine(line string, position int) float64 {
	n := runeLen(line)
	if n < 3 || n > 50 {
		return 0
	}
	lower := strings.ToLower(line)
	switch {
	case boilerplatePrefixRE.MatchString(line),
		pureNumberRE.MatchString(line),
		numberPunctRE.MatchString(line),
		strings.Contains(lower, "customer copy"),
		strings.Contains(lower, "merchant copy"),
		slashDateRE.MatchString(line),
		clockTimeRE.MatchString(line):
		return 0
	}

	score := math.Min(float64(n)/10, 5)
	switch {
	case position == 0:
		score += 10
	case position <= 2:
		score += 7
	case position <= 5:
		score += 3
	}
	if upperStartRE.MatchString(line) {
		score += 3
	}
	if upperRunRE.MatchString(line) {
		score += 2
	}
	if businessWordRE.MatchString(line) {
		score += 5
	}
	if strings.Contains(line, "&") {
		score += 2
	}
	if strings.Contains(line, "@") {
		score -= 3
	}
	if strings.Contains(line, ".com") {
		score -= 3
	}
	return math.Max(0, score)
}

// RankMerchants scores the leading lines and returns the positive ones,
// best first. Equal scores keep their line order.
func RankMerchants(lines []string) []Candidate[string] {
	var out []Candidate[string]
	for i := 0; i < len(lines) && i < maxMerchantLines; i++ {
		if s := ScoreMerchantLine(lines[i], i); s > 0 {
			out = append(out, Candidate[string]{Value: lines[i], Text: lines[i], Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// pickMerchant returns the best-ranked line, or the first line when no line
// scores above zero.
func pickMerchant(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	if ranked := RankMerchants(lines); len(ranked) > 0 {
		return ranked[0].Value
	}
	return lines[0]
}
