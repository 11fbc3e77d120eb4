package models

// Company is the identity of a listed company within one country. It owns the
// profile and the statements; deleting it cascades to both.
type Company struct {
	Generic

	// Ticker symbol, unique within a country.
	Symbol string `gorm:"size:20;not null;uniqueIndex:idx_company_symbol_country" json:"symbol"`
	// Company name.
	Name string `gorm:"size:255;not null" json:"name"`
	// Lowercase country code, e.g. "us".
	CountryCode string `gorm:"size:5;not null;uniqueIndex:idx_company_symbol_country" json:"country_code"`

	Profile    *CompanyProfile      `gorm:"constraint:OnDelete:CASCADE;" json:"profile,omitempty"`
	Financials []FinancialStatement `gorm:"constraint:OnDelete:CASCADE;" json:"financials,omitempty"`
}

func (Company) TableName() string {
	return "company"
}
