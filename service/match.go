package service

import (
	"strings"

	"github.com/shubhamc1947/company-data/provider"
)

var primaryExchanges = map[string]bool{
	"NASDAQ": true,
	"NYSE":   true,
}

// BestMatch picks the candidate for a search by name: an exact symbol match
// on a primary exchange, then a name containing the query on a primary
// exchange, then the first result. It returns nil for no results.
func BestMatch(query string, results []provider.SearchResult) *provider.SearchResult {
	for i, r := range results {
		if strings.EqualFold(r.Symbol, query) && primaryExchanges[r.ExchangeShortName] {
			return &results[i]
		}
	}

	lowerQuery := strings.ToLower(query)
	for i, r := range results {
		if strings.Contains(strings.ToLower(r.Name), lowerQuery) && primaryExchanges[r.ExchangeShortName] {
			return &results[i]
		}
	}

	if len(results) > 0 {
		return &results[0]
	}

	return nil
}
