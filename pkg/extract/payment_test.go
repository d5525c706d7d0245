package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("ClassifyPayment",
	func(text string, method PaymentMethod, last4 string) {
		m, l := ClassifyPayment(text)
		Expect(m).To(Equal(method))
		Expect(l).To(Equal(last4))
	},
	Entry("masked card before a brand", "**** 4242 VISA", CreditCard, "4242"),
	Entry("brand followed by a long number", "VISA 1234567812345678", CreditCard, "5678"),
	Entry("debit mentioned before the card", "DEBIT CARD ending 9876", DebitCard, "9876"),
	Entry("x masked number", "Acct XXXXXXXX1234", CreditCard, "1234"),
	Entry("number on the line above the brand", "Ref 5555\nMASTERCARD", CreditCard, "5555"),
	Entry("cash keyword", "Paid by CASH", Cash, ""),
	Entry("paypal keyword", "PAYPAL", PayPal, ""),
	Entry("cheque keyword", "Paid by cheque", Check, ""),
	Entry("transfer keyword", "wire transfer", BankTransfer, ""),
	Entry("contactless keyword", "CONTACTLESS", CreditCard, ""),
	Entry("nothing", "Total 12.00", PaymentMethod(""), ""),
)

var _ = DescribeTable("FindVATRate",
	func(text string, want float64, wantOK bool) {
		v, ok := FindVATRate(text)
		Expect(ok).To(Equal(wantOK))
		if wantOK {
			Expect(v).To(BeNumerically("~", want, 1e-9))
		}
	},
	Entry("labelled VAT", "VAT: 17%", 17.0, true),
	Entry("tax with decimals", "Tax: 8.25%", 8.25, true),
	Entry("percentage before VAT", "20% VAT", 20.0, true),
	Entry("above the cap", "VAT: 75%", 0.0, false),
	Entry("zero is allowed", "VAT 0%", 0.0, true),
	Entry("no rate", "Total 12.00", 0.0, false),
)

var _ = DescribeTable("Categorize",
	func(name string, want Category) {
		Expect(Categorize(name)).To(Equal(want))
	},
	Entry("restaurant", "Joe's Pizza", Restaurant),
	Entry("hotel", "Grand Hotel", HotelLodging),
	Entry("fuel", "Shell", CarRelated),
	Entry("groceries", "Whole Foods Market", Groceries),
	Entry("transportation", "Yellow Taxi", Transportation),
	Entry("unknown", "Acme", Other),
)

var _ = DescribeTable("FindReference",
	func(text, want string, wantOK bool) {
		ref, ok := FindReference(text)
		Expect(ok).To(Equal(wantOK))
		Expect(ref).To(Equal(want))
	},
	Entry("project", "Project: ALPHA-42", "ALPHA-42", true),
	Entry("reference", "Reference: INV-2023", "INV-2023", true),
	Entry("order", "Order #A1234", "A1234", true),
	Entry("hash only", "Ticket #778", "778", true),
	Entry("too short", "Order #12", "", false),
	Entry("none", "Total 5.00", "", false),
)
