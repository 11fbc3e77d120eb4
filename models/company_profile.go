package models

import "time"

// CompanyProfile is the descriptive data of a company together with the time
// it was fetched. It is never patched: a refresh deletes it and inserts a new
// one.
type CompanyProfile struct {
	Generic

	CompanyID uint `gorm:"not null;uniqueIndex" json:"company_id"`

	Exchange          string `gorm:"size:50" json:"exchange"`
	Sector            string `gorm:"size:100" json:"sector"`
	Industry          string `gorm:"size:100" json:"industry"`
	Description       string `gorm:"type:text" json:"description"`
	Website           string `gorm:"size:255" json:"website"`
	FullTimeEmployees *int64 `json:"full_time_employees"`
	MarketCapUSD      *int64 `json:"market_cap_usd"`

	// Epoch seconds of the upstream fetch this profile came from.
	LastUpdatedTS int64 `gorm:"not null" json:"last_updated_ts"`
}

func (CompanyProfile) TableName() string {
	return "company_profile"
}

// IsStale checks whether the profile, and with it the statements fetched in
// the same refresh, has outlived timeout.
func (p *CompanyProfile) IsStale(now time.Time, timeout time.Duration) bool {
	return IsExpired(p.LastUpdatedTS, now, timeout)
}
