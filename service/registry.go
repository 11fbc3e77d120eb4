package service

import (
	"sort"
	"strings"

	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/internal/lock"
	"github.com/shubhamc1947/company-data/provider"
	"github.com/shubhamc1947/company-data/provider/fmp"
	"go.uber.org/zap"
)

// ProviderFactory builds the upstream client of a country.
type ProviderFactory func(cfg core.ProviderConfig, logger *zap.SugaredLogger) provider.Provider

// Countries with a known upstream. A configured country missing here is a
// startup error.
var providerFactories = map[string]ProviderFactory{
	"us": func(cfg core.ProviderConfig, logger *zap.SugaredLogger) provider.Provider {
		return fmp.NewClient(cfg, logger)
	},
}

// Registry maps lowercase country codes to their service.
type Registry struct {
	services map[string]*Service
}

func NewRegistry(services ...*Service) *Registry {
	r := &Registry{services: make(map[string]*Service, len(services))}
	for _, s := range services {
		r.services[strings.ToLower(s.Country())] = s
	}

	return r
}

// BuildRegistry creates one service per configured provider, all sharing the
// store and the refresh lock.
func BuildRegistry(cfg *core.Config, st Store, locker lock.Locker, logger *zap.SugaredLogger) (*Registry, error) {
	services := make([]*Service, 0, len(cfg.Providers))

	for country, pc := range cfg.Providers {
		factory, ok := providerFactories[country]
		if !ok {
			return nil, &UnsupportedCountryError{Code: country}
		}

		countryLogger := logger.With("country", country)
		services = append(services, New(country, factory(pc, countryLogger.With("component", "provider")), st, Options{
			CacheTimeout:  cfg.Cache.Timeout,
			SearchTimeout: cfg.Cache.SearchTimeout,
			Locker:        locker,
			Logger:        countryLogger.With("component", "service"),
		}))
	}

	return NewRegistry(services...), nil
}

// Get returns the service of a country code in any case.
func (r *Registry) Get(country string) (*Service, error) {
	s, ok := r.services[strings.ToLower(country)]
	if !ok {
		return nil, &UnsupportedCountryError{Code: country}
	}

	return s, nil
}

// Countries lists the supported country codes in order.
func (r *Registry) Countries() []string {
	countries := make([]string, 0, len(r.services))
	for country := range r.services {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	return countries
}
