package models

// FinancialStatement holds one fiscal year of figures for a company.
type FinancialStatement struct {
	Generic

	CompanyID uint   `gorm:"not null;uniqueIndex:idx_statement_company_year" json:"company_id"`
	Year      string `gorm:"size:4;not null;uniqueIndex:idx_statement_company_year" json:"year"`

	RevenueUSD      *int64 `json:"revenue_usd"`
	ProfitUSD       *int64 `json:"profit_usd"`
	ShareCapitalUSD *int64 `json:"share_capital_usd"`
}

func (FinancialStatement) TableName() string {
	return "financial_statement"
}
