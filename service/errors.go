package service

import (
	"errors"
	"fmt"

	"github.com/shubhamc1947/company-data/store"
)

var (
	// ErrNotFound means a search gave nothing to work with.
	ErrNotFound = errors.New("company not found")
	// ErrMissingSymbol means the best search match carries no ticker.
	ErrMissingSymbol = errors.New("stock symbol not available for the best match")
	// ErrUpstreamFetch means the company profile could not be fetched.
	// Nothing is cached, so the next request simply tries again.
	ErrUpstreamFetch = errors.New("failed to fetch company data from upstream")
	// ErrPersistence means the refreshed snapshot could not be stored; the
	// previous one is still in place.
	ErrPersistence = store.ErrPersistence
)

// UnsupportedCountryError is returned for a country code without a
// configured provider. It is the caller's mistake, not a server fault.
type UnsupportedCountryError struct {
	Code string
}

func (e *UnsupportedCountryError) Error() string {
	return fmt.Sprintf("no service found for country code: %s", e.Code)
}
