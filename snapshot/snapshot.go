// Package snapshot holds the externally visible shape of a company's cached
// data and the merge of upstream statement histories into that shape.
package snapshot

// Snapshot is a company's profile together with its year-wise figures, as
// currently persisted.
type Snapshot struct {
	Profile            Profile `json:"profile"`
	YearWiseFinancials []Year  `json:"year_wise_financials"`
}

// Profile mirrors the upstream profile field names so cached and live data
// read the same way.
type Profile struct {
	Symbol            string `json:"symbol"`
	CompanyName       string `json:"companyName"`
	ExchangeShortName string `json:"exchangeShortName"`
	Sector            string `json:"sector"`
	Industry          string `json:"industry"`
	Country           string `json:"country"`
	Website           string `json:"website"`
	Description       string `json:"description"`
	FullTimeEmployees *int64 `json:"fullTimeEmployees"`
	MktCap            *int64 `json:"mktCap"`
	LastUpdatedTS     int64  `json:"lastUpdated"`
}

// Year is one fiscal year of merged figures. Employees and market cap are
// the profile's current values repeated for every year; they are not
// historical.
type Year struct {
	Year            string `json:"year"`
	Employees       *int64 `json:"employees"`
	RevenueUSD      *int64 `json:"revenue_usd"`
	ProfitUSD       *int64 `json:"profit_usd"`
	ShareCapitalUSD *int64 `json:"share_capital_usd"`
	MarketCapUSD    *int64 `json:"market_cap_usd"`
}
