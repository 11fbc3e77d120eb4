package models

import "time"

// Generic holds the columns shared by every table. Rows are hard deleted, so
// there is no DeletedAt.
type Generic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsExpired reports whether data last written at lastUpdatedTS (epoch
// seconds) is older than timeout at now. An age exactly equal to the timeout
// is still fresh.
func IsExpired(lastUpdatedTS int64, now time.Time, timeout time.Duration) bool {
	return now.Unix()-lastUpdatedTS > int64(timeout/time.Second)
}
