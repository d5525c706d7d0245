package extract

import "strings"

const (
	maxSuggestions     = 8
	minCustomQueryLen  = 3
	customMerchantType = "Custom"
)

// Merchant is an entry in the merchant suggestion list.
type Merchant struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

var commonMerchants = []Merchant{
	{"Amazon", "Shopping", "Online"},
	{"Starbucks", "Food & Drink", "Coffee Shop"},
	{"McDonald's", "Food & Drink", "Fast Food"},
	{"Target", "Shopping", "Retail Store"},
	{"Walmart", "Shopping", "Retail Store"},
	{"Shell", "Transportation", "Gas Station"},
	{"Uber", "Transportation", "Ride Share"},
	{"CVS Pharmacy", "Health", "Pharmacy"},
	{"Home Depot", "Shopping", "Home Improvement"},
	{"Costco", "Shopping", "Warehouse Store"},
	{"Apple Store", "Technology", "Electronics"},
	{"Best Buy", "Technology", "Electronics"},
	{"Subway", "Food & Drink", "Fast Food"},
	{"Pizza Hut", "Food & Drink", "Restaurant"},
	{"Office Depot", "Business", "Office Supplies"},
}

// SuggestMerchants filters the common merchant list by name, category or
// type. A query of three or more characters that names no listed merchant
// is offered first as a custom entry.
func SuggestMerchants(query string) []Merchant {
	q := strings.ToLower(query)
	var out []Merchant
	exact := false
	for _, m := range commonMerchants {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Category), q) ||
			strings.Contains(strings.ToLower(m.Type), q) {
			out = append(out, m)
			exact = exact || strings.ToLower(m.Name) == q
		}
	}
	if runeLen(query) >= minCustomQueryLen && !exact {
		custom := Merchant{Name: query, Category: string(Categorize(query)), Type: customMerchantType}
		out = append([]Merchant{custom}, out...)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
