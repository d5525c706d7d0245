package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScoreMerchantLine", func() {
	DescribeTable("disqualified lines",
		func(line string) {
			Expect(ScoreMerchantLine(line, 0)).To(BeZero())
		},
		Entry("too short", "AB"),
		Entry("too long", "THIS LINE IS FAR TOO LONG TO BE THE NAME OF ANY SHOP"),
		Entry("boilerplate", "Receipt 123"),
		Entry("pure number", "12345"),
		Entry("phone number", "(555) 123-4567"),
		Entry("copy marker", "Customer Copy"),
		Entry("date", "Sold 05/06/2023"),
		Entry("clock time", "Open 9:30"),
	)

	It("should reward the first line", func() {
		Expect(ScoreMerchantLine("Acme", 0)).To(BeNumerically(">", ScoreMerchantLine("Acme", 1)))
		Expect(ScoreMerchantLine("Acme", 2)).To(BeNumerically(">", ScoreMerchantLine("Acme", 3)))
		Expect(ScoreMerchantLine("Acme", 5)).To(BeNumerically(">", ScoreMerchantLine("Acme", 6)))
	})

	It("should add the business word and casing bonuses", func() {
		// 1.7 length + 10 position + 3 uppercase start + 2 uppercase run + 5 business word
		Expect(ScoreMerchantLine("ACME SHOP LTD 123", 0)).To(BeNumerically("~", 21.7, 1e-9))
	})

	It("should penalise web and mail addresses", func() {
		Expect(ScoreMerchantLine("info@acme.com", 8)).To(BeZero())
	})
})

var _ = Describe("RankMerchants", func() {
	It("should keep line order for equal scores", func() {
		ranked := RankMerchants([]string{"12", "Alpha", "Bravo"})
		Expect(ranked).To(HaveLen(2))
		Expect(ranked[0].Value).To(Equal("Alpha"))
	})

	It("should only consider the first ten lines", func() {
		lines := make([]string, 0, 12)
		for i := 0; i < 10; i++ {
			lines = append(lines, "0000")
		}
		lines = append(lines, "ACME RESTAURANT")
		Expect(RankMerchants(lines)).To(BeEmpty())
		Expect(pickMerchant(lines)).To(Equal("0000"))
	})
})

var _ = DescribeTable("DetectCurrency",
	func(lower, fallback, want string) {
		Expect(DetectCurrency(lower, fallback)).To(Equal(want))
	},
	Entry("dollar sign", "total $5", "EUR", "USD"),
	Entry("euro sign", "€ 5.00", "USD", "EUR"),
	Entry("symbol wins over code", "5.00 eur $", "USD", "USD"),
	Entry("code", "amount 5 gbp", "USD", "GBP"),
	Entry("shekel sign", "₪ 30", "USD", "ILS"),
	Entry("hebrew script", "שלום 50", "USD", "ILS"),
	Entry("fallback", "total 5", "JPY", "JPY"),
)

var _ = Describe("SuggestMerchants", func() {
	It("should put a custom entry first", func() {
		got := SuggestMerchants("star")
		Expect(got).To(HaveLen(2))
		Expect(got[0]).To(Equal(Merchant{Name: "star", Category: "other", Type: "Custom"}))
		Expect(got[1].Name).To(Equal("Starbucks"))
	})

	It("should not add a custom entry for an exact name", func() {
		Expect(SuggestMerchants("uber")).To(Equal([]Merchant{{"Uber", "Transportation", "Ride Share"}}))
	})

	It("should match categories and types", func() {
		got := SuggestMerchants("Food")
		Expect(got).To(HaveLen(5))
		Expect(got[0].Type).To(Equal("Custom"))
		Expect(got[0].Category).To(Equal("other"))
	})

	It("should categorize a custom entry", func() {
		got := SuggestMerchants("Hilltop Hotel")
		Expect(got).To(HaveLen(1))
		Expect(got[0].Category).To(Equal(string(HotelLodging)))
	})

	It("should cap the list", func() {
		Expect(SuggestMerchants("o")).To(HaveLen(8))
	})
})
