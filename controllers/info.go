package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhamc1947/company-data/service"
	"go.uber.org/zap"
)

const testCompany = "Apple"

type InfoController struct {
	Registry *service.Registry
	Logger   *zap.SugaredLogger
}

type example struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var exampleCategories = map[string][]example{
	"tech_giants": {
		{Name: "Apple", Symbol: "AAPL"},
		{Name: "Microsoft", Symbol: "MSFT"},
		{Name: "Google/Alphabet", Symbol: "GOOGL"},
		{Name: "Amazon", Symbol: "AMZN"},
		{Name: "Meta/Facebook", Symbol: "META"},
	},
	"popular_stocks": {
		{Name: "Tesla", Symbol: "TSLA"},
		{Name: "Netflix", Symbol: "NFLX"},
		{Name: "Nike", Symbol: "NKE"},
		{Name: "Coca-Cola", Symbol: "KO"},
		{Name: "McDonald's", Symbol: "MCD"},
	},
	"banking": {
		{Name: "JPMorgan Chase", Symbol: "JPM"},
		{Name: "Bank of America", Symbol: "BAC"},
		{Name: "Wells Fargo", Symbol: "WFC"},
	},
}

func (ic InfoController) Index(c *gin.Context) {
	RespondOK(c, gin.H{
		"service":     "Company Data API",
		"description": "Key financial metrics of public companies for the last 5 years",
		"countries":   ic.Registry.Countries(),
		"target_metrics": []string{
			"employees (full-time employees)",
			"revenue_usd (annual revenue)",
			"profit_usd (net income)",
			"share_capital_usd (share capital)",
			"market_cap_usd (market capitalization)",
		},
		"endpoints": gin.H{
			"GET /":                         "API documentation",
			"GET /company/{country}/{name}": "Company metrics by name (last 5 years)",
			"GET /search/{country}/{name}":  "Search for companies",
			"GET /examples":                 "Popular companies list",
			"GET /test":                     "Quick upstream check",
			"GET /health":                   "Database health",
		},
	})
}

func (ic InfoController) Examples(c *gin.Context) {
	RespondOK(c, gin.H{
		"message":    "Popular US companies",
		"categories": exampleCategories,
		"usage_examples": []string{
			"/company/us/Apple",
			"/company/us/Tesla",
			"/company/us/Microsoft",
			"/search/us/bank",
		},
	})
}

// Test runs a search for a well known company against the first configured
// country to check that the upstream answers.
func (ic InfoController) Test(c *gin.Context) {
	countries := ic.Registry.Countries()
	if len(countries) == 0 {
		RespondInternalErr(c)
		return
	}

	country := countries[0]
	svc, err := ic.Registry.Get(country)
	if err != nil {
		RespondInternalErr(c)
		return
	}

	ic.Logger.Infof("Running quick test with company %v in %v", testCompany, country)

	results, err := svc.Search(c.Request.Context(), testCompany)
	if err != nil || len(results) == 0 {
		ic.Logger.Warnf("Quick test failed: %v", err)
		c.JSON(http.StatusOK, apiResponse{
			Errors: []string{"Could not fetch test data"},
			Data:   gin.H{"status": "API Issue"},
		})
		return
	}

	RespondOK(c, gin.H{
		"status":          "API Working!",
		"test_company":    testCompany,
		"found_companies": len(results),
		"first_result":    results[0],
		"next_step":       fmt.Sprintf("/company/%v/%v", country, testCompany),
	})
}
