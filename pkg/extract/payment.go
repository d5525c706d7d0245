package extract

import (
	"regexp"
	"strings"
)

// cardMatchers capture a digit run; its last four digits are the card suffix.
var cardMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:card|visa|mastercard|amex|discover).*?(\d{4,})`),
	regexp.MustCompile(`(?i)(?:ending|last|xxxx).*?(\d{4,})`),
	regexp.MustCompile(`\*+\s?(\d{4,})`),
	regexp.MustCompile(`(?i)x{4,}(\d{4,})`),
	regexp.MustCompile(`(?im)(\d{4,})[ \t]*\n[^\n]*(?:card|visa|mastercard|amex)`),
}

// cardBrands decide the method from the text just before a card number.
var cardBrands = []struct {
	words  []string
	method PaymentMethod
}{
	{[]string{"visa"}, CreditCard},
	{[]string{"mastercard", "master card"}, CreditCard},
	{[]string{"amex", "american express"}, CreditCard},
	{[]string{"discover"}, CreditCard},
	{[]string{"debit"}, DebitCard},
}

// paymentKeywords is scanned in order when no card number is present.
var paymentKeywords = []struct {
	word   string
	method PaymentMethod
}{
	{"cash", Cash},
	{"credit", CreditCard},
	{"debit", DebitCard},
	{"card", CreditCard},
	{"visa", CreditCard},
	{"mastercard", CreditCard},
	{"master card", CreditCard},
	{"amex", CreditCard},
	{"american express", CreditCard},
	{"discover", CreditCard},
	{"paypal", PayPal},
	{"check", Check},
	{"cheque", Check},
	{"transfer", BankTransfer},
	{"wire", BankTransfer},
	{"contactless", CreditCard},
	{"chip", CreditCard},
	{"tap", CreditCard},
}

// ClassifyPayment detects the payment method and, when a card number is
// printed, its last four digits. An empty method means nothing was found.
func ClassifyPayment(text string) (PaymentMethod, string) {
	for _, re := range cardMatchers {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		run := text[loc[2]:loc[3]]
		before := strings.ToLower(window(text, loc[0], cardContextRadius, 0))
		return cardMethod(before), run[len(run)-4:]
	}

	lower := strings.ToLower(text)
	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw.word) {
			return kw.method, ""
		}
	}
	return "", ""
}

func cardMethod(before string) PaymentMethod {
	for _, b := range cardBrands {
		for _, w := range b.words {
			if strings.Contains(before, w) {
				return b.method
			}
		}
	}
	return CreditCard
}
