// Package fetcher refreshes cached company snapshots ahead of requests.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/shubhamc1947/company-data/models"
	"github.com/shubhamc1947/company-data/service"
	"go.uber.org/zap"
)

type StaleLister interface {
	ListStaleCompanies(ctx context.Context, country string, now time.Time, timeout time.Duration) ([]models.Company, error)
}

type Summary struct {
	Refreshed int
	Failed    int
}

// Refresher refetches every stored company whose snapshot is older than the
// cache timeout, one company at a time.
type Refresher struct {
	registry *service.Registry
	store    StaleLister
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.SugaredLogger
}

func NewRefresher(registry *service.Registry, store StaleLister, timeout time.Duration, logger *zap.SugaredLogger) *Refresher {
	return &Refresher{
		registry: registry,
		store:    store,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Run refreshes all countries. A company that fails is logged and skipped;
// only a failure to list the stale companies stops the run.
func (r *Refresher) Run(ctx context.Context) (Summary, error) {
	r.logger.Info("Running refresh job...")

	var summary Summary

	for _, country := range r.registry.Countries() {
		svc, err := r.registry.Get(country)
		if err != nil {
			return summary, err
		}

		companies, err := r.store.ListStaleCompanies(ctx, country, r.now(), r.timeout)
		if err != nil {
			return summary, fmt.Errorf("failed to list stale companies of %v: %w", country, err)
		}

		r.logger.Infof("%d stale companies in %v", len(companies), country)

		for _, company := range companies {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			r.logger.Infof("Refreshing %v", company.Symbol)

			if _, err := svc.RefreshCompany(ctx, company.Symbol); err != nil {
				r.logger.Warnf("Unable to refresh %v: %v", company.Symbol, err)
				summary.Failed++
				continue
			}

			summary.Refreshed++
		}
	}

	return summary, nil
}
