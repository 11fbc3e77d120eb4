// Package service decides when cached company data can be served and when it
// has to be fetched again.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shubhamc1947/company-data/internal/lock"
	"github.com/shubhamc1947/company-data/models"
	"github.com/shubhamc1947/company-data/provider"
	"github.com/shubhamc1947/company-data/snapshot"
	"github.com/shubhamc1947/company-data/store"
	"go.uber.org/zap"
)

const (
	DefaultCacheTimeout  = 24 * time.Hour
	DefaultSearchTimeout = time.Hour
)

// Store is the part of the cache store the service needs.
type Store interface {
	FindCompany(ctx context.Context, symbol, country string) (*models.Company, error)
	ReplaceCompanySnapshot(ctx context.Context, symbol, country string, profile provider.Profile, years []snapshot.Year) error
	ReadSnapshot(ctx context.Context, company *models.Company) (*snapshot.Snapshot, error)
	FindSearchCache(ctx context.Context, query, country string) (*store.SearchCacheEntry, error)
	UpsertSearchCache(ctx context.Context, query, country string, results []provider.SearchResult) error
}

type Options struct {
	// CacheTimeout bounds the age of a served company snapshot.
	CacheTimeout time.Duration
	// SearchTimeout bounds the age of served search results.
	SearchTimeout time.Duration
	// Locker guards refreshes; defaults to a process local lock.
	Locker lock.Locker
	Logger *zap.SugaredLogger
	Now    func() time.Time
}

// Service serves the company data of one country.
type Service struct {
	country       string
	provider      provider.Provider
	store         Store
	locker        lock.Locker
	cacheTimeout  time.Duration
	searchTimeout time.Duration
	now           func() time.Time
	logger        *zap.SugaredLogger
}

func New(country string, p provider.Provider, s Store, opts Options) *Service {
	svc := &Service{
		country:       country,
		provider:      p,
		store:         s,
		locker:        opts.Locker,
		cacheTimeout:  opts.CacheTimeout,
		searchTimeout: opts.SearchTimeout,
		now:           opts.Now,
		logger:        opts.Logger,
	}

	if svc.locker == nil {
		svc.locker = lock.NewLocal()
	}
	if svc.cacheTimeout <= 0 {
		svc.cacheTimeout = DefaultCacheTimeout
	}
	if svc.searchTimeout <= 0 {
		svc.searchTimeout = DefaultSearchTimeout
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop().Sugar()
	}

	return svc
}

func (s *Service) Country() string {
	return s.country
}

// GetCompanyData returns the snapshot of symbol. A fresh cached snapshot is
// served without calling the provider. Otherwise the data is fetched,
// merged, stored and read back from the store, so a hit and a miss produce
// the same shape. A stale snapshot is never served when the refetch fails.
func (s *Service) GetCompanyData(ctx context.Context, symbol string) (*snapshot.Snapshot, error) {
	snap, err := s.cachedSnapshot(ctx, symbol)
	if err != nil || snap != nil {
		return snap, err
	}

	unlock, err := s.locker.Lock(ctx, s.lockKey(symbol))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Another request may have refreshed the company while we waited.
	snap, err = s.cachedSnapshot(ctx, symbol)
	if err != nil || snap != nil {
		return snap, err
	}

	return s.refresh(ctx, symbol)
}

// RefreshCompany fetches and stores symbol regardless of the cached data's
// age.
func (s *Service) RefreshCompany(ctx context.Context, symbol string) (*snapshot.Snapshot, error) {
	unlock, err := s.locker.Lock(ctx, s.lockKey(symbol))
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.refresh(ctx, symbol)
}

// cachedSnapshot returns the stored snapshot of symbol if it is fresh, and
// nil if it is missing or stale.
func (s *Service) cachedSnapshot(ctx context.Context, symbol string) (*snapshot.Snapshot, error) {
	company, err := s.store.FindCompany(ctx, symbol, s.country)
	if err != nil {
		return nil, err
	}

	if company == nil {
		s.logger.Infof("Cache miss for %v", symbol)
		return nil, nil
	}

	if company.Profile == nil || company.Profile.IsStale(s.now(), s.cacheTimeout) {
		s.logger.Infof("Cached data for %v is stale", symbol)
		return nil, nil
	}

	s.logger.Infof("Serving %v from cache", symbol)
	return s.store.ReadSnapshot(ctx, company)
}

func (s *Service) refresh(ctx context.Context, symbol string) (*snapshot.Snapshot, error) {
	raw, err := s.provider.FetchRaw(ctx, symbol)
	if err != nil {
		s.logger.Warnf("Unable to fetch %v from upstream: %v", symbol, err)
		return nil, fmt.Errorf("%w: %v: %w", ErrUpstreamFetch, symbol, err)
	}

	years := snapshot.MatchYears(raw.IncomeStatements, raw.BalanceSheets, raw.Profile)

	if err := s.store.ReplaceCompanySnapshot(ctx, symbol, s.country, raw.Profile, years); err != nil {
		s.logger.Errorf("Unable to store snapshot of %v: %v", symbol, err)
		return nil, err
	}

	company, err := s.store.FindCompany(ctx, symbol, s.country)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: %v missing right after it was stored", ErrPersistence, symbol)
	}

	return s.store.ReadSnapshot(ctx, company)
}

// Search returns the upstream candidates for query. Results younger than the
// search timeout come from the cache; otherwise the provider is asked, the
// answer is cached and returned as fetched.
func (s *Service) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	entry, err := s.store.FindSearchCache(ctx, query, s.country)
	if err != nil {
		return nil, err
	}

	if entry != nil && !entry.IsStale(s.now(), s.searchTimeout) {
		s.logger.Infof("Serving search %q from cache", query)
		return entry.Results, nil
	}

	results, err := s.provider.Search(ctx, query)
	if err != nil {
		if errors.Is(err, provider.ErrNoData) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}

	if err := s.store.UpsertSearchCache(ctx, query, s.country, results); err != nil {
		s.logger.Errorf("Unable to cache search results for %q: %v", query, err)
	}

	return results, nil
}

// ResolveSymbol finds the ticker that best matches a company name.
func (s *Service) ResolveSymbol(ctx context.Context, name string) (string, error) {
	results, err := s.Search(ctx, name)
	if err != nil {
		return "", err
	}

	best := BestMatch(name, results)
	if best == nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if best.Symbol == "" {
		return "", ErrMissingSymbol
	}

	return best.Symbol, nil
}

func (s *Service) lockKey(symbol string) string {
	return s.country + ":" + symbol
}
