package extract

import "strings"

// Extract builds a record from normalized receipt text. Fields that cannot
// be found, or that fail their range checks, are left empty. Currency is
// always set, falling back to the preferred one.
func Extract(text string, prefs Preferences) Record {
	var r Record
	lines := splitLines(text)
	lower := strings.ToLower(text)

	r.Merchant = pickMerchant(lines)
	if a, ok := BestAmount(text); ok {
		r.Amount = a
	}
	r.Currency = DetectCurrency(lower, prefs.DefaultCurrency)
	if d, ok := findDate(text, prefs.DateFormat); ok {
		r.Date = d
	}
	if v, ok := FindVATRate(text); ok {
		r.VATRate = &v
	}
	r.PaymentMethod, r.CardLastFour = ClassifyPayment(text)
	if ref, ok := FindReference(text); ok {
		r.Project = ref
	}
	r.Notes = pickNotes(lines, r.Merchant)
	if prefs.AutoCategorizeMerchants && r.Merchant != "" {
		r.Category = Categorize(r.Merchant)
	}
	return r
}
