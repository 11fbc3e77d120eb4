package snapshot

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/shubhamc1947/company-data/provider"
)

// MatchYears merges income statements with balance sheets by fiscal year.
// Every income statement produces exactly one Year, whether or not a balance
// sheet of the same year exists. The result is ordered newest first.
func MatchYears(income []provider.IncomeStatement, balance []provider.BalanceSheet, profile provider.Profile) []Year {
	years := make([]Year, 0, len(income))

	for _, in := range income {
		year := fiscalYear(in.CalendarYear, in.Date)

		var shareCapital *int64
		if bs := findBalanceSheet(balance, year); bs != nil {
			shareCapital = firstValid(bs.CommonStock, bs.ShareCapital)
		}

		years = append(years, Year{
			Year:            year,
			Employees:       profile.FullTimeEmployees.Ptr(),
			RevenueUSD:      in.Revenue.Ptr(),
			ProfitUSD:       in.NetIncome.Ptr(),
			ShareCapitalUSD: shareCapital,
			MarketCapUSD:    profile.MktCap.Ptr(),
		})
	}

	SortYears(years)
	return years
}

// SortYears orders years newest first. A year that is not four digits sorts
// as year zero, so it ends up last; the order among equal keys is kept.
func SortYears(years []Year) {
	sort.SliceStable(years, func(i, j int) bool {
		return yearKey(years[i].Year) > yearKey(years[j].Year)
	})
}

// yearLength is the width of the stored year column.
const yearLength = 4

// fiscalYear prefers the explicit fiscal year and falls back to the first
// four characters of the statement date. The result never exceeds
// yearLength characters.
func fiscalYear(calendarYear, date string) string {
	year := calendarYear
	if (year == "" || utf8.RuneCountInString(year) > yearLength) && date != "" {
		year = date
	}

	if utf8.RuneCountInString(year) > yearLength {
		return string([]rune(year)[:yearLength])
	}
	return year
}

func findBalanceSheet(balance []provider.BalanceSheet, year string) *provider.BalanceSheet {
	for i := range balance {
		if fiscalYear(balance[i].CalendarYear, balance[i].Date) == year {
			return &balance[i]
		}
	}
	return nil
}

func firstValid(values ...provider.OptionalInt) *int64 {
	for _, v := range values {
		if v.Valid {
			return v.Ptr()
		}
	}
	return nil
}

func yearKey(year string) int {
	if len(year) != 4 {
		return 0
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, _ := strconv.Atoi(year)
	return n
}
