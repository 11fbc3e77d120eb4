package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shubhamc1947/company-data/service"
	"github.com/shubhamc1947/company-data/snapshot"
	"go.uber.org/zap"
)

const descriptionLimit = 200

const companySuggestion = "Try: Apple, Microsoft, Tesla, Amazon, Google, Meta, Netflix, Nike"

type CompaniesController struct {
	Registry *service.Registry
	Logger   *zap.SugaredLogger
}

type CompanyInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Exchange    string `json:"exchange"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type DataQuality struct {
	DataSource string `json:"data_source"`
}

type CompanyResponse struct {
	SearchQuery        string          `json:"search_query"`
	MatchedCompany     string          `json:"matched_company"`
	Symbol             string          `json:"symbol"`
	CompanyInfo        CompanyInfo     `json:"company_info"`
	YearWiseFinancials []snapshot.Year `json:"year_wise_financials"`
	DataQuality        DataQuality     `json:"data_quality"`
}

// GetCompany resolves a company name to its best matching symbol and returns
// its profile with the year-wise figures.
func (cc CompaniesController) GetCompany(c *gin.Context) {
	country := c.Param("country")
	name := c.Param("name")
	ctx := c.Request.Context()

	cc.Logger.Infof("Request for company %q in country %q", name, country)

	svc, err := cc.Registry.Get(country)
	if err != nil {
		cc.Logger.Warn(err)
		RespondNotFoundErr(c, []error{err}, nil)
		return
	}

	symbol, err := svc.ResolveSymbol(ctx, name)
	switch {
	case errors.Is(err, service.ErrNotFound):
		RespondNotFoundErr(c,
			[]error{fmt.Errorf("Company %q not found in %v", name, strings.ToUpper(country))},
			gin.H{"suggestion": companySuggestion},
		)
		return
	case errors.Is(err, service.ErrMissingSymbol):
		RespondBadRequestErr(c, []error{err})
		return
	case err != nil:
		cc.Logger.Errorf("Unable to resolve %q: %v", name, err)
		RespondInternalErr(c)
		return
	}

	cc.Logger.Infof("Resolved %q to %v", name, symbol)

	snap, err := svc.GetCompanyData(ctx, symbol)
	if err != nil {
		cc.Logger.Errorf("Unable to get data for %v: %v", symbol, err)
		if errors.Is(err, service.ErrUpstreamFetch) {
			RespondCustomStatusErr(c, http.StatusInternalServerError,
				[]error{fmt.Errorf("Failed to fetch or process data for symbol %v", symbol)})
			return
		}
		RespondInternalErr(c)
		return
	}

	RespondOK(c, newCompanyResponse(name, symbol, country, snap))
}

func newCompanyResponse(query, symbol, country string, snap *snapshot.Snapshot) CompanyResponse {
	profile := snap.Profile

	countryName := profile.Country
	if countryName == "" {
		countryName = strings.ToUpper(country)
	}

	return CompanyResponse{
		SearchQuery:    query,
		MatchedCompany: profile.CompanyName,
		Symbol:         symbol,
		CompanyInfo: CompanyInfo{
			Name:        profile.CompanyName,
			Symbol:      symbol,
			Exchange:    profile.ExchangeShortName,
			Sector:      profile.Sector,
			Industry:    profile.Industry,
			Country:     countryName,
			Website:     profile.Website,
			Description: shortDescription(profile.Description),
		},
		YearWiseFinancials: snap.YearWiseFinancials,
		DataQuality: DataQuality{
			DataSource: fmt.Sprintf("Cached %v API Data", strings.ToUpper(country)),
		},
	}
}

// shortDescription keeps the first 200 characters followed by an ellipsis.
func shortDescription(description string) string {
	if description == "" {
		return ""
	}

	runes := []rune(description)
	if len(runes) > descriptionLimit {
		runes = runes[:descriptionLimit]
	}

	return string(runes) + "..."
}
