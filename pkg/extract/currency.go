package extract

import "strings"

// currencyTable is checked top to bottom; the first token present wins.
var currencyTable = []struct {
	token string
	code  string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₪", "ILS"},
	{"usd", "USD"},
	{"eur", "EUR"},
	{"gbp", "GBP"},
	{"jpy", "JPY"},
	{"ils", "ILS"},
}

// DetectCurrency finds the receipt currency in lower-cased text. Hebrew
// script with no explicit marker means shekels; otherwise fallback is used.
func DetectCurrency(lower, fallback string) string {
	for _, c := range currencyTable {
		if strings.Contains(lower, c.token) {
			return c.code
		}
	}
	if IsHebrew(lower) {
		return "ILS"
	}
	return fallback
}

// IsHebrew reports whether s contains a character from the Hebrew block.
func IsHebrew(s string) bool {
	for _, r := range s {
		if r >= 0x0590 && r <= 0x05FF {
			return true
		}
	}
	return false
}
