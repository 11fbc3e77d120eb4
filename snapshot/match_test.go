package snapshot_test

import (
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shubhamc1947/company-data/provider"
	"github.com/shubhamc1947/company-data/snapshot"
)

func yearsOf(years []snapshot.Year) []string {
	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, y.Year)
	}
	return out
}

var _ = Describe("MatchYears", func() {
	var (
		profile provider.Profile
		income  []provider.IncomeStatement
		balance []provider.BalanceSheet
	)

	BeforeEach(func() {
		profile = provider.Profile{
			Symbol:            "AAPL",
			CompanyName:       "Apple Inc.",
			FullTimeEmployees: provider.Int(164000),
			MktCap:            provider.Int(3000000000000),
		}
		income = []provider.IncomeStatement{
			{Date: "2023-09-30", CalendarYear: "2023", Revenue: provider.Int(383285000000), NetIncome: provider.Int(96995000000)},
			{Date: "2022-09-24", CalendarYear: "2022", Revenue: provider.Int(394328000000), NetIncome: provider.Int(99803000000)},
		}
		balance = []provider.BalanceSheet{
			{Date: "2023-09-30", CalendarYear: "2023", CommonStock: provider.Int(73812000000)},
		}
	})

	It("produces one year per income statement", func() {
		Expect(snapshot.MatchYears(income, balance, profile)).To(HaveLen(2))
		Expect(snapshot.MatchYears(income, nil, profile)).To(HaveLen(2))
		Expect(snapshot.MatchYears(nil, balance, profile)).To(BeEmpty())
	})

	It("is deterministic", func() {
		Expect(snapshot.MatchYears(income, balance, profile)).To(Equal(snapshot.MatchYears(income, balance, profile)))
	})

	It("merges the balance sheet of the same year", func() {
		years := snapshot.MatchYears(income, balance, profile)

		Expect(years[0].Year).To(Equal("2023"))
		Expect(years[0].RevenueUSD).To(HaveValue(Equal(int64(383285000000))))
		Expect(years[0].ProfitUSD).To(HaveValue(Equal(int64(96995000000))))
		Expect(years[0].ShareCapitalUSD).To(HaveValue(Equal(int64(73812000000))))

		Expect(years[1].Year).To(Equal("2022"))
		Expect(years[1].ShareCapitalUSD).To(BeNil())
	})

	It("repeats the current employees and market cap in every year", func() {
		for _, y := range snapshot.MatchYears(income, balance, profile) {
			Expect(y.Employees).To(HaveValue(Equal(int64(164000))))
			Expect(y.MarketCapUSD).To(HaveValue(Equal(int64(3000000000000))))
		}
	})

	It("leaves unknown figures empty", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{{CalendarYear: "2021"}},
			nil,
			provider.Profile{},
		)

		Expect(years).To(HaveLen(1))
		Expect(years[0].RevenueUSD).To(BeNil())
		Expect(years[0].ProfitUSD).To(BeNil())
		Expect(years[0].Employees).To(BeNil())
		Expect(years[0].MarketCapUSD).To(BeNil())
	})

	It("derives the year from the date when the calendar year is missing", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{{Date: "2021-06-30", Revenue: provider.Int(10)}},
			[]provider.BalanceSheet{{Date: "2021-06-30", ShareCapital: provider.Int(5)}},
			profile,
		)

		Expect(years[0].Year).To(Equal("2021"))
		Expect(years[0].ShareCapitalUSD).To(HaveValue(Equal(int64(5))))
	})

	It("keeps years within four characters", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{
				{CalendarYear: "FY2023", Date: "2023-09-30"},
				{CalendarYear: "20221"},
				{CalendarYear: "année"},
				{CalendarYear: "abc"},
			},
			[]provider.BalanceSheet{{CalendarYear: "FY2023", Date: "2023-09-30", CommonStock: provider.Int(7)}},
			profile,
		)

		Expect(yearsOf(years)).To(ConsistOf("2023", "2022", "anné", "abc"))
		for _, y := range years {
			Expect(utf8.RuneCountInString(y.Year)).To(BeNumerically("<=", 4))
			if y.Year == "2023" {
				Expect(y.ShareCapitalUSD).To(HaveValue(Equal(int64(7))))
			}
		}
	})

	It("prefers common stock and accepts zero as a value", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{{CalendarYear: "2020"}},
			[]provider.BalanceSheet{{CalendarYear: "2020", CommonStock: provider.Int(0), ShareCapital: provider.Int(42)}},
			profile,
		)

		Expect(years[0].ShareCapitalUSD).To(HaveValue(Equal(int64(0))))
	})

	It("falls back to share capital", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{{CalendarYear: "2020"}},
			[]provider.BalanceSheet{{CalendarYear: "2020", ShareCapital: provider.Int(42)}},
			profile,
		)

		Expect(years[0].ShareCapitalUSD).To(HaveValue(Equal(int64(42))))
	})

	It("uses the first balance sheet of a year", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{{CalendarYear: "2020"}},
			[]provider.BalanceSheet{
				{CalendarYear: "2020", CommonStock: provider.Int(1)},
				{CalendarYear: "2020", CommonStock: provider.Int(2)},
			},
			profile,
		)

		Expect(years[0].ShareCapitalUSD).To(HaveValue(Equal(int64(1))))
	})

	It("orders years newest first with unparseable years last", func() {
		years := snapshot.MatchYears(
			[]provider.IncomeStatement{
				{CalendarYear: "abc"},
				{CalendarYear: "2020"},
				{CalendarYear: "2022"},
			},
			nil,
			profile,
		)

		Expect(yearsOf(years)).To(Equal([]string{"2022", "2020", "abc"}))
	})
})

var _ = Describe("SortYears", func() {
	It("keeps the input order of equal keys", func() {
		years := []snapshot.Year{{Year: "x"}, {Year: "2019"}, {Year: "20199"}, {Year: "2023"}}

		snapshot.SortYears(years)

		Expect(yearsOf(years)).To(Equal([]string{"2023", "2019", "x", "20199"}))
	})
})
