package fetcher_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/fetcher"
	"github.com/shubhamc1947/company-data/provider"
	"github.com/shubhamc1947/company-data/service"
	"github.com/shubhamc1947/company-data/store"
)

type recordingProvider struct {
	mu      sync.Mutex
	known   map[string]bool
	fetched []string
}

func (p *recordingProvider) Search(ctx context.Context, name string) ([]provider.SearchResult, error) {
	return []provider.SearchResult{}, nil
}

func (p *recordingProvider) FetchRaw(ctx context.Context, symbol string) (*provider.RawCompanyData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fetched = append(p.fetched, symbol)
	if !p.known[symbol] {
		return nil, fmt.Errorf("profile of %v: %w", symbol, provider.ErrNoData)
	}

	return &provider.RawCompanyData{
		Profile: provider.Profile{Symbol: symbol, CompanyName: symbol + " Corp"},
		IncomeStatements: []provider.IncomeStatement{
			{CalendarYear: "2023", Revenue: provider.Int(1)},
		},
	}, nil
}

var _ = Describe("Refresher", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		st        *store.Store
		up        *recordingProvider
		refresher *fetcher.Refresher
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = core.OpenSQLite("file::memory:?_foreign_keys=on", &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(core.Migrate(db)).To(Succeed())
		DeferCleanup(func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		})

		st = store.New(db)
		up = &recordingProvider{known: map[string]bool{"OLD": true, "NEW": true}}

		registry := service.NewRegistry(service.New("us", up, st, service.Options{CacheTimeout: 24 * time.Hour}))
		refresher = fetcher.NewRefresher(registry, st, 24*time.Hour, zap.NewNop().Sugar())

		past := store.New(db, store.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) }))
		Expect(past.ReplaceCompanySnapshot(ctx, "OLD", "us", provider.Profile{CompanyName: "Old Corp"}, nil)).To(Succeed())
		Expect(past.ReplaceCompanySnapshot(ctx, "GONE", "us", provider.Profile{CompanyName: "Gone Corp"}, nil)).To(Succeed())
		Expect(st.ReplaceCompanySnapshot(ctx, "NEW", "us", provider.Profile{CompanyName: "New Corp"}, nil)).To(Succeed())
	})

	It("refreshes only stale companies and skips failures", func() {
		summary, err := refresher.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(summary).To(Equal(fetcher.Summary{Refreshed: 1, Failed: 1}))
		Expect(up.fetched).To(ConsistOf("GONE", "OLD"))

		company, err := st.FindCompany(ctx, "OLD", "us")
		Expect(err).NotTo(HaveOccurred())
		Expect(company.Name).To(Equal("OLD Corp"))
		Expect(company.Profile.IsStale(time.Now(), 24*time.Hour)).To(BeFalse())

		gone, err := st.FindCompany(ctx, "GONE", "us")
		Expect(err).NotTo(HaveOccurred())
		Expect(gone.Profile.IsStale(time.Now(), 24*time.Hour)).To(BeTrue())
	})

	It("has nothing to do right after a run", func() {
		delete(up.known, "OLD")
		up.known["GONE"] = true

		_, err := refresher.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		up.fetched = nil
		summary, err := refresher.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(Equal(fetcher.Summary{Refreshed: 0, Failed: 1}))
		Expect(up.fetched).To(ConsistOf("OLD"))
	})

	It("stops when the context ends", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := refresher.Run(cancelled)
		Expect(err).To(HaveOccurred())
		Expect(up.fetched).To(BeEmpty())
	})
})
