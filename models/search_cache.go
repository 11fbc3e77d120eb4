package models

import (
	"time"

	"gorm.io/datatypes"
)

// SearchCache keeps the raw upstream result list of one search query. It has
// no relation to Company.
type SearchCache struct {
	Generic

	QueryText   string         `gorm:"size:255;not null;uniqueIndex:idx_search_query_country" json:"query_text"`
	CountryCode string         `gorm:"size:5;not null;uniqueIndex:idx_search_query_country" json:"country_code"`
	Results     datatypes.JSON `gorm:"not null" json:"results"`

	LastUpdatedTS int64 `gorm:"not null" json:"last_updated_ts"`
}

func (SearchCache) TableName() string {
	return "search_cache"
}

func (s *SearchCache) IsStale(now time.Time, timeout time.Duration) bool {
	return IsExpired(s.LastUpdatedTS, now, timeout)
}
