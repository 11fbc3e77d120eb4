package provider

import (
	"context"
	"errors"
)

// ErrNoData is the only failure a Provider reports. It covers both an empty
// upstream answer and a transport failure, so callers cannot tell a missing
// company from an unreachable upstream.
var ErrNoData = errors.New("no data from upstream provider")

// Provider is the upstream financial data source of one country.
type Provider interface {
	// Search looks companies up by name. It does no caching.
	Search(ctx context.Context, name string) ([]SearchResult, error)
	// FetchRaw gets the profile and the income and balance sheet histories
	// of symbol. Only a missing profile is fatal; a missing history comes
	// back as an empty list.
	FetchRaw(ctx context.Context, symbol string) (*RawCompanyData, error)
}

// RawCompanyData is the unmerged upstream data of one company.
type RawCompanyData struct {
	Profile          Profile
	IncomeStatements []IncomeStatement
	BalanceSheets    []BalanceSheet
}

// SearchResult is one candidate returned by a company search.
type SearchResult struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Currency          string `json:"currency,omitempty"`
	StockExchange     string `json:"stockExchange,omitempty"`
	ExchangeShortName string `json:"exchangeShortName,omitempty"`
	Type              string `json:"type,omitempty"`
}

type Profile struct {
	Symbol            string      `json:"symbol"`
	CompanyName       string      `json:"companyName"`
	Exchange          string      `json:"exchange"`
	ExchangeShortName string      `json:"exchangeShortName"`
	Sector            string      `json:"sector"`
	Industry          string      `json:"industry"`
	Description       string      `json:"description"`
	Website           string      `json:"website"`
	Country           string      `json:"country"`
	FullTimeEmployees OptionalInt `json:"fullTimeEmployees"`
	MktCap            OptionalInt `json:"mktCap"`
}

type IncomeStatement struct {
	Date         string      `json:"date"`
	Symbol       string      `json:"symbol"`
	CalendarYear string      `json:"calendarYear"`
	Period       string      `json:"period"`
	Revenue      OptionalInt `json:"revenue"`
	NetIncome    OptionalInt `json:"netIncome"`
}

type BalanceSheet struct {
	Date         string      `json:"date"`
	Symbol       string      `json:"symbol"`
	CalendarYear string      `json:"calendarYear"`
	Period       string      `json:"period"`
	CommonStock  OptionalInt `json:"commonStock"`
	ShareCapital OptionalInt `json:"shareCapital"`
}
