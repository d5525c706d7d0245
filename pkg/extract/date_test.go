package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("ParseDate",
	func(token string, format DateFormat, want string, wantOK bool) {
		got, ok := ParseDate(token, format)
		Expect(ok).To(Equal(wantOK))
		Expect(got).To(Equal(want))
	},
	Entry("day first", "05/06/2023", DayMonthYear, "2023-06-05", true),
	Entry("month first", "05/06/2023", MonthDayYear, "2023-05-06", true),
	Entry("year first preference", "2023/06/05", YearMonthDay, "2023-06-05", true),
	Entry("year first overrides a day first preference", "2023/06/05", DayMonthYear, "2023-06-05", true),
	Entry("trailing year overrides a year first preference", "05/06/2023", YearMonthDay, "2023-05-06", true),
	Entry("dashes use calendar parsing", "2023-06-05", DayMonthYear, "2023-06-05", true),
	Entry("month names", "5 June 2023", DayMonthYear, "2023-06-05", true),
	Entry("short year falls back to month first", "05/06/23", DayMonthYear, "2023-05-06", true),
	Entry("dotted short year in the 1900s", "1.12.50", DayMonthYear, "", false),
	Entry("dotted short year in the 2000s", "1.12.30", DayMonthYear, "2030-01-12", true),
	Entry("dashed short year in the 1900s", "05-06-55", DayMonthYear, "", false),
	Entry("last short year before the pivot", "1.12.49", DayMonthYear, "2049-01-12", true),
	Entry("short month name year in the 1900s", "5 Jun 68", DayMonthYear, "", false),
	Entry("impossible day", "31/02/2024", DayMonthYear, "", false),
	Entry("too old", "01/01/1985", DayMonthYear, "", false),
	Entry("too far ahead", "01/01/2150", DayMonthYear, "", false),
	Entry("garbage", "hello", DayMonthYear, "", false),
)

var _ = Describe("findDate", func() {
	It("should prefer a labelled date", func() {
		d, ok := findDate("Printed 01/02/2020\nDate: 03/04/2021", DayMonthYear)
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal("2021-04-03"))
	})

	It("should skip tokens that do not parse", func() {
		d, ok := findDate("Ref 99/99/9999\n12 Mar 2022", DayMonthYear)
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal("2022-03-12"))
	})
})

var _ = DescribeTable("FormatDateForDisplay",
	func(iso string, format DateFormat, want string) {
		Expect(FormatDateForDisplay(iso, format)).To(Equal(want))
	},
	Entry("day first", "2023-06-05", DayMonthYear, "05/06/2023"),
	Entry("month first", "2023-06-05", MonthDayYear, "06/05/2023"),
	Entry("year first", "2023-06-05", YearMonthDay, "2023/06/05"),
	Entry("not a date", "soon", DayMonthYear, "soon"),
)
