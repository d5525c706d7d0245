package extract

import (
	"regexp"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Extract", func() {
	var (
		text   string
		prefs  Preferences
		record Record
	)

	BeforeEach(func() {
		prefs = DefaultPreferences()
	})

	JustBeforeEach(func() {
		record = Extract(text, prefs)
	})

	When("reading a simple coffee receipt", func() {
		BeforeEach(func() {
			text = "STARBUCKS COFFEE\n123 Main St\nTotal: $12.50\n05/06/2023"
		})

		It("should pick the first line as merchant", func() {
			Expect(record.Merchant).To(Equal("STARBUCKS COFFEE"))
		})

		It("should find the total", func() {
			Expect(record.Amount).To(Equal("12.50"))
		})

		It("should detect dollars", func() {
			Expect(record.Currency).To(Equal("USD"))
		})

		It("should read the date day first", func() {
			Expect(record.Date).To(Equal("2023-06-05"))
		})

		It("should leave missing fields empty", func() {
			Expect(record.VATRate).To(BeNil())
			Expect(record.PaymentMethod).To(BeEmpty())
			Expect(record.CardLastFour).To(BeEmpty())
			Expect(record.Project).To(BeEmpty())
			Expect(record.Notes).To(BeEmpty())
		})

		It("should categorize the merchant", func() {
			Expect(record.Category).To(Equal(Other))
		})

		When("the user prefers month first dates", func() {
			BeforeEach(func() {
				prefs.DateFormat = MonthDayYear
			})

			It("should swap day and month", func() {
				Expect(record.Date).To(Equal("2023-05-06"))
			})
		})

		When("auto categorization is off", func() {
			BeforeEach(func() {
				prefs.AutoCategorizeMerchants = false
			})

			It("should not set a category", func() {
				Expect(record.Category).To(BeEmpty())
			})
		})
	})

	When("every line is a number", func() {
		BeforeEach(func() {
			text = "12345\n67890\n555"
		})

		It("should fall back to the first line", func() {
			Expect(record.Merchant).To(Equal("12345"))
		})
	})

	When("the receipt carries tax, card and reference details", func() {
		BeforeEach(func() {
			text = "JOE'S PIZZA\nThank you for dining with us\nOrder #A1234\nVAT: 17%\n**** 4242 VISA\nTotal: 58.50"
		})

		It("should read the VAT rate", func() {
			Expect(record.VATRate).NotTo(BeNil())
			Expect(record.VATRateString()).To(Equal("17"))
		})

		It("should detect the card", func() {
			Expect(record.PaymentMethod).To(Equal(CreditCard))
			Expect(record.CardLastFour).To(Equal("4242"))
			Expect(record.CardNote()).To(Equal("Card ending in 4242"))
		})

		It("should find the order reference", func() {
			Expect(record.Project).To(Equal("A1234"))
		})

		It("should keep a descriptive line as notes", func() {
			Expect(record.Notes).To(Equal("Thank you for dining with us"))
		})

		It("should categorize the merchant as a restaurant", func() {
			Expect(record.Category).To(Equal(Restaurant))
		})
	})

	When("the receipt is in Hebrew without a currency marker", func() {
		BeforeEach(func() {
			text = "מסעדה טובה\nסהכ 45.00"
		})

		It("should assume shekels", func() {
			Expect(record.Currency).To(Equal("ILS"))
		})
	})

	When("no currency is printed", func() {
		BeforeEach(func() {
			text = "CORNER SHOP\nTotal 9.99"
			prefs.DefaultCurrency = "GBP"
		})

		It("should use the preferred currency", func() {
			Expect(record.Currency).To(Equal("GBP"))
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = "  \n \n"
		})

		It("should only carry the preferred currency", func() {
			Expect(record).To(Equal(Record{Currency: "USD"}))
			Expect(record.PopulatedFields()).To(Equal([]string{"currency"}))
		})
	})

	When("a total line was repaired into a dotted number", func() {
		BeforeEach(func() {
			// "Total 12.50" after confusion and decimal repair.
			text = "ACME\nVAT: 17%\n**** 4242 V1SA\nTota1.12.50"
		})

		It("should not read it as a date", func() {
			Expect(record.Date).To(BeEmpty())
			Expect(record.Merchant).To(Equal("ACME"))
			Expect(record.CardLastFour).To(Equal("4242"))
		})
	})

	Describe("field validity", func() {
		receipts := []string{
			"STARBUCKS COFFEE\n123 Main St\nTotal: $12.50\n05/06/2023",
			"GRAND HOTEL\nDate: 31/12/1989\nVAT 99%\nTotal 1000000.00",
			"ACME\nCard ending 123456789\nTax: 8.25%\nAmount due 0.01",
			"SHELL STATION\n2024/02/30\nFuel 45,67 €\nxxxx9876",
			"MARKET\n12 Mar 2022\nSubtotal 10.00\nTotal 12.00\nCash",
		}
		fourDigits := regexp.MustCompile(`^\d{4}$`)

		It("should only return values inside their bounds", func() {
			for _, r := range receipts {
				rec := Extract(r, DefaultPreferences())
				if rec.Amount != "" {
					v, err := decimal.NewFromString(rec.Amount)
					Expect(err).NotTo(HaveOccurred())
					Expect(v.GreaterThan(decimal.RequireFromString("0.01"))).To(BeTrue(), r)
					Expect(v.LessThan(decimal.NewFromInt(999999))).To(BeTrue(), r)
				}
				if rec.Date != "" {
					d, err := time.Parse("2006-01-02", rec.Date)
					Expect(err).NotTo(HaveOccurred())
					Expect(d.Year()).To(BeNumerically(">", 1990))
					Expect(d.Year()).To(BeNumerically("<", 2100))
					Expect(d.Format("2006-01-02")).To(Equal(rec.Date))
				}
				if rec.VATRate != nil {
					Expect(*rec.VATRate).To(BeNumerically(">=", 0))
					Expect(*rec.VATRate).To(BeNumerically("<=", 50))
				}
				if rec.CardLastFour != "" {
					Expect(rec.CardLastFour).To(MatchRegexp(fourDigits.String()))
				}
			}
		})
	})
})

var _ = Describe("Record", func() {
	It("should list populated fields in order", func() {
		v := 7.5
		r := Record{Merchant: "ACME", Currency: "USD", VATRate: &v, CardLastFour: "1234"}
		Expect(r.PopulatedFields()).To(Equal([]string{"merchant", "currency", "vatRate", "cardLastFour"}))
		Expect(r.VATRateString()).To(Equal("7.5"))
	})

	It("should have no card note without a card", func() {
		Expect(Record{}.CardNote()).To(BeEmpty())
	})
})

var _ = Describe("Preferences", func() {
	It("should accept the defaults", func() {
		Expect(DefaultPreferences().Validate()).To(Succeed())
	})

	It("should reject an unknown date format", func() {
		p := DefaultPreferences()
		p.DateFormat = "DD-MM"
		Expect(p.Validate()).To(HaveOccurred())
	})

	It("should reject an unknown currency", func() {
		p := DefaultPreferences()
		p.DefaultCurrency = "XYZ"
		Expect(p.Validate()).To(HaveOccurred())
	})
})
