// Package store persists company snapshots and search results.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shubhamc1947/company-data/models"
	"github.com/shubhamc1947/company-data/provider"
	"github.com/shubhamc1947/company-data/snapshot"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrPersistence wraps any failure of a snapshot replace. The previous
	// snapshot is left untouched when it is returned.
	ErrPersistence = errors.New("failed to persist company snapshot")
	// ErrNoProfile is returned when reading a snapshot of a company whose
	// profile was never stored.
	ErrNoProfile = errors.New("company has no stored profile")
)

// Store is the gorm backed cache of companies, their snapshots and raw
// search results.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now as the source of last-updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FindCompany looks a company up by its unique key with the profile
// preloaded. A miss returns nil and no error.
func (s *Store) FindCompany(ctx context.Context, symbol, country string) (*models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Where("symbol = ? AND country_code = ?", symbol, strings.ToLower(country)).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &company, nil
}

// ReplaceCompanySnapshot stores a freshly fetched profile and its year-wise
// figures. The company row is upserted, and the profile and every statement
// are deleted and inserted again. Everything happens in one transaction, so
// a failure leaves the previous snapshot as it was.
func (s *Store) ReplaceCompanySnapshot(ctx context.Context, symbol, country string, profile provider.Profile, years []snapshot.Year) error {
	country = strings.ToLower(country)
	now := s.now().Unix()

	name := profile.CompanyName
	if name == "" {
		name = symbol
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := models.Company{Symbol: symbol, Name: name, CountryCode: country}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "country_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&upsert).Error
		if err != nil {
			return fmt.Errorf("upsert company: %w", err)
		}

		var company models.Company
		if err := tx.Where("symbol = ? AND country_code = ?", symbol, country).First(&company).Error; err != nil {
			return fmt.Errorf("reload company: %w", err)
		}

		if err := tx.Where("company_id = ?", company.ID).Delete(&models.CompanyProfile{}).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}

		if err := tx.Where("company_id = ?", company.ID).Delete(&models.FinancialStatement{}).Error; err != nil {
			return fmt.Errorf("delete statements: %w", err)
		}

		stored := models.CompanyProfile{
			CompanyID:         company.ID,
			Exchange:          profile.ExchangeShortName,
			Sector:            profile.Sector,
			Industry:          profile.Industry,
			Description:       profile.Description,
			Website:           profile.Website,
			FullTimeEmployees: profile.FullTimeEmployees.Ptr(),
			MarketCapUSD:      profile.MktCap.Ptr(),
			LastUpdatedTS:     now,
		}
		if err := tx.Create(&stored).Error; err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		if len(years) == 0 {
			return nil
		}

		statements := make([]models.FinancialStatement, 0, len(years))
		for _, y := range years {
			statements = append(statements, models.FinancialStatement{
				CompanyID:       company.ID,
				Year:            y.Year,
				RevenueUSD:      y.RevenueUSD,
				ProfitUSD:       y.ProfitUSD,
				ShareCapitalUSD: y.ShareCapitalUSD,
			})
		}
		if err := tx.Create(&statements).Error; err != nil {
			return fmt.Errorf("insert statements: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %w", ErrPersistence, country, symbol, err)
	}

	return nil
}

// ReadSnapshot rebuilds the API shape of a company from the stored rows. The
// years come back newest first.
func (s *Store) ReadSnapshot(ctx context.Context, company *models.Company) (*snapshot.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var profile models.CompanyProfile
	if err := db.Where("company_id = ?", company.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNoProfile, company.CountryCode, company.Symbol)
		}

		return nil, err
	}

	var statements []models.FinancialStatement
	if err := db.Where("company_id = ?", company.ID).Order("year DESC").Find(&statements).Error; err != nil {
		return nil, err
	}

	years := make([]snapshot.Year, 0, len(statements))
	for _, st := range statements {
		years = append(years, snapshot.Year{
			Year:            st.Year,
			Employees:       profile.FullTimeEmployees,
			RevenueUSD:      st.RevenueUSD,
			ProfitUSD:       st.ProfitUSD,
			ShareCapitalUSD: st.ShareCapitalUSD,
			MarketCapUSD:    profile.MarketCapUSD,
		})
	}
	// ORDER BY year is lexicographic; re-sort numerically.
	snapshot.SortYears(years)

	return &snapshot.Snapshot{
		Profile: snapshot.Profile{
			Symbol:            company.Symbol,
			CompanyName:       company.Name,
			ExchangeShortName: profile.Exchange,
			Sector:            profile.Sector,
			Industry:          profile.Industry,
			Country:           strings.ToUpper(company.CountryCode),
			Website:           profile.Website,
			Description:       profile.Description,
			FullTimeEmployees: profile.FullTimeEmployees,
			MktCap:            profile.MarketCapUSD,
			LastUpdatedTS:     profile.LastUpdatedTS,
		},
		YearWiseFinancials: years,
	}, nil
}

// ListStaleCompanies returns the companies of country whose profile is
// missing or older than timeout at now.
func (s *Store) ListStaleCompanies(ctx context.Context, country string, now time.Time, timeout time.Duration) ([]models.Company, error) {
	threshold := now.Unix() - int64(timeout/time.Second)

	var companies []models.Company
	err := s.db.WithContext(ctx).
		Joins("LEFT JOIN company_profile ON company_profile.company_id = company.id").
		Where("company.country_code = ?", strings.ToLower(country)).
		Where("(company_profile.id IS NULL OR company_profile.last_updated_ts < ?)", threshold).
		Order("company.symbol").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}

	return companies, nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// SearchCacheEntry is a decoded search_cache row.
type SearchCacheEntry struct {
	Query         string
	CountryCode   string
	Results       []provider.SearchResult
	LastUpdatedTS int64
}

func (e *SearchCacheEntry) IsStale(now time.Time, timeout time.Duration) bool {
	return models.IsExpired(e.LastUpdatedTS, now, timeout)
}

// FindSearchCache returns the cached results of query in country, or nil when
// the query was never cached.
func (s *Store) FindSearchCache(ctx context.Context, query, country string) (*SearchCacheEntry, error) {
	var row models.SearchCache
	err := s.db.WithContext(ctx).
		Where("query_text = ? AND country_code = ?", query, strings.ToLower(country)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	results := []provider.SearchResult{}
	if err := json.Unmarshal(row.Results, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached search results: %w", err)
	}

	return &SearchCacheEntry{
		Query:         row.QueryText,
		CountryCode:   row.CountryCode,
		Results:       results,
		LastUpdatedTS: row.LastUpdatedTS,
	}, nil
}

// UpsertSearchCache stores a serialized copy of results, replacing whatever
// was cached for the same query and country.
func (s *Store) UpsertSearchCache(ctx context.Context, query, country string, results []provider.SearchResult) error {
	if results == nil {
		results = []provider.SearchResult{}
	}

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	row := models.SearchCache{
		QueryText:     query,
		CountryCode:   strings.ToLower(country),
		Results:       datatypes.JSON(data),
		LastUpdatedTS: s.now().Unix(),
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query_text"}, {Name: "country_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"results", "last_updated_ts", "updated_at"}),
	}).Create(&row).Error
}
