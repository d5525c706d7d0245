package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols are the symbols the amount patterns recognise.
const currencySymbols = "$€£¥₪"

type amountMatcher struct {
	name string
	re   *regexp.Regexp
}

// amountMatchers run in this order; candidates keep the order they were found in.
var amountMatchers = []amountMatcher{
	{"keyword-total", regexp.MustCompile(`(?i)(?:total|amount|sum|grand\s*total)[:\s]*[$€£¥₪]?\s*(\d+(?:[.,]\d{2,3})?)`)},
	{"symbol-number", regexp.MustCompile(`[$€£¥₪]\s*(\d+(?:[.,]\d{1,3})?)`)},
	{"number-symbol", regexp.MustCompile(`(\d+(?:[.,]\d{1,3})?)\s*[$€£¥₪]`)},
	{"decimal-pair", regexp.MustCompile(`\b(\d{1,6}[.,]\d{2})\b`)},
	{"line-total", regexp.MustCompile(`(?im)^\s*(?:total|amount|sum)[:\s]*(\d+(?:[.,]\d{2,3})?)`)},
	{"price-cost-charge", regexp.MustCompile(`(?i)(?:price|cost|charge)[:\s]*[$€£¥₪]?\s*(\d+(?:[.,]\d{2,3})?)`)},
	{"standalone-symbol", regexp.MustCompile(`(?m)(?:^|\s)([$€£¥₪]\d+(?:[.,]\d{2,3})?)`)},
	{"invoice-total", regexp.MustCompile(`(?i)(?:invoice|bill)\s*(?:total|amount)[:\s]*[$€£¥₪]?\s*(\d+(?:[.,]\d{2,3})?)`)},
}

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.NewFromInt(999999)
)

// amountKeywordWeights are applied to the lower-cased context window.
var amountKeywordWeights = []struct {
	word   string
	weight int
}{
	{"total", 10},
	{"amount", 8},
	{"sum", 7},
	{"grand", 9},
	{"subtotal", 5},
	{"price", 4},
	{"cost", 4},
	{"charge", 4},
	{"tax", -2},
	{"tip", -2},
	{"change", -5},
	{"discount", -3},
}

// CleanAmount strips currency symbols, drops thousands commas and turns the
// first remaining comma into a decimal point.
func CleanAmount(raw string) string {
	s := strings.TrimSpace(strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, raw))
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i+4 <= len(s) && isDigits(s[i+1:i+4]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return strings.Replace(b.String(), ",", ".", 1)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// AmountPriority scores a match by the keywords around it. Context keywords
// outweigh magnitude, since receipts carry unit prices, quantities and change.
func AmountPriority(match, context string) int {
	lower := strings.ToLower(context)
	p := 0
	for _, kw := range amountKeywordWeights {
		if strings.Contains(lower, kw.word) {
			p += kw.weight
		}
	}
	if strings.ContainsAny(match, currencySymbols) {
		p += 3
	}
	return p
}

// RankAmounts collects every plausible amount in text, best first: higher
// priority wins, and at equal priority the larger value wins. That tie-break
// can prefer a subtotal over a total when neither has keyword context.
func RankAmounts(text string) []Candidate[decimal.Decimal] {
	var out []Candidate[decimal.Decimal]
	for _, m := range amountMatchers {
		for _, loc := range m.re.FindAllStringSubmatchIndex(text, -1) {
			full := text[loc[0]:loc[1]]
			raw := full
			if loc[2] >= 0 {
				raw = text[loc[2]:loc[3]]
			}
			clean := CleanAmount(raw)
			v, err := decimal.NewFromString(clean)
			if err != nil || !v.GreaterThan(minAmount) || !v.LessThan(maxAmount) {
				continue
			}
			ctx := window(text, loc[0], amountContextRadius, amountContextRadius)
			out = append(out, Candidate[decimal.Decimal]{
				Value:   v,
				Text:    clean,
				Score:   float64(AmountPriority(full, ctx)),
				Context: strings.ToLower(ctx),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// BestAmount returns the cleaned decimal string of the top-ranked amount.
func BestAmount(text string) (string, bool) {
	ranked := RankAmounts(text)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Text, true
}
