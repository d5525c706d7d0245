package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RankAmounts", func() {
	It("should prefer the keyword total over the change", func() {
		amount, ok := BestAmount("Total: $20.00\nChange: $80.00")
		Expect(ok).To(BeTrue())
		Expect(amount).To(Equal("20.00"))
	})

	It("should pick the larger value when no keyword helps", func() {
		amount, ok := BestAmount("Coffee 3.50\nMuffin 4.25")
		Expect(ok).To(BeTrue())
		Expect(amount).To(Equal("4.25"))
	})

	It("should reach an amount after a currency symbol", func() {
		ranked := RankAmounts("$ 12.00")
		Expect(ranked).NotTo(BeEmpty())
		Expect(ranked[0].Text).To(Equal("12.00"))
		Expect(ranked[0].Score).To(BeNumerically("==", 3))
	})

	It("should discard values outside the valid range", func() {
		_, ok := BestAmount("Total: 0.01")
		Expect(ok).To(BeFalse())

		_, ok = BestAmount("Total: 1000000.00")
		Expect(ok).To(BeFalse())
	})

	It("should return nothing for text without numbers", func() {
		Expect(RankAmounts("thank you")).To(BeEmpty())
	})

	It("should order candidates by score then value", func() {
		ranked := RankAmounts("Total: $20.00\nChange: $80.00")
		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1], ranked[i]
			Expect(prev.Score >= cur.Score).To(BeTrue())
			if prev.Score == cur.Score {
				Expect(prev.Value.GreaterThanOrEqual(cur.Value)).To(BeTrue())
			}
		}
	})
})

var _ = DescribeTable("CleanAmount",
	func(raw, want string) {
		Expect(CleanAmount(raw)).To(Equal(want))
	},
	Entry("strips the symbol", "$12.50", "12.50"),
	Entry("drops thousands separators", "1,234,567.89", "1234567.89"),
	Entry("turns a decimal comma into a point", "12,50", "12.50"),
	Entry("handles the shekel sign", "₪45", "45"),
)

var _ = DescribeTable("AmountPriority",
	func(match, context string, want int) {
		Expect(AmountPriority(match, context)).To(Equal(want))
	},
	Entry("total with symbol", "$5.00", "Total $5.00", 13),
	Entry("grand total", "5.00", "GRAND TOTAL 5.00", 19),
	Entry("subtotal also counts as total", "5.00", "subtotal 5.00", 15),
	Entry("change is penalised", "5.00", "change 5.00", -5),
	Entry("tax and tip", "5.00", "tax tip 5.00", -4),
	Entry("no keywords", "5.00", "coffee 5.00", 0),
)
