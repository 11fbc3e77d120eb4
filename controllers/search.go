package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shubhamc1947/company-data/service"
	"go.uber.org/zap"
)

const maxSearchResults = 10

var searchSuggestions = []string{"Apple", "Microsoft", "Tesla", "Amazon"}

type SearchController struct {
	Registry *service.Registry
	Logger   *zap.SugaredLogger
}

type SearchItem struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

type SearchResponse struct {
	Query        string       `json:"query"`
	TotalResults int          `json:"total_results"`
	Results      []SearchItem `json:"results"`
}

type EmptySearchResponse struct {
	Query       string   `json:"query"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Search lists the upstream candidates for a name. Finding nothing is not an
// error here.
func (sc SearchController) Search(c *gin.Context) {
	country := c.Param("country")
	name := c.Param("name")

	sc.Logger.Infof("Search request for %q in country %q", name, country)

	svc, err := sc.Registry.Get(country)
	if err != nil {
		sc.Logger.Warn(err)
		RespondNotFoundErr(c, []error{err}, nil)
		return
	}

	results, err := svc.Search(c.Request.Context(), name)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		sc.Logger.Errorf("Unable to search %q: %v", name, err)
		RespondInternalErr(c)
		return
	}

	if len(results) == 0 {
		RespondOK(c, EmptySearchResponse{
			Query:       name,
			Message:     fmt.Sprintf("No companies found in %v", strings.ToUpper(country)),
			Suggestions: searchSuggestions,
		})
		return
	}

	items := make([]SearchItem, 0, maxSearchResults)
	for i, r := range results {
		if i == maxSearchResults {
			break
		}
		items = append(items, SearchItem{
			Name:     r.Name,
			Symbol:   r.Symbol,
			Exchange: r.ExchangeShortName,
			Type:     r.Type,
		})
	}

	RespondOK(c, SearchResponse{
		Query:        name,
		TotalResults: len(results),
		Results:      items,
	})
}
