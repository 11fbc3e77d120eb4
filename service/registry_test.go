package service_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/internal/lock"
	"github.com/shubhamc1947/company-data/service"
	"github.com/shubhamc1947/company-data/store"
)

var _ = Describe("Registry", func() {
	var st *store.Store

	BeforeEach(func() {
		st = store.New(newTestDB())
	})

	It("looks services up by country code in any case", func() {
		us := service.New("us", newFakeProvider(), st, service.Options{})
		registry := service.NewRegistry(us)

		found, err := registry.Get("US")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeIdenticalTo(us))
		Expect(registry.Countries()).To(Equal([]string{"us"}))
	})

	It("rejects an unsupported country", func() {
		registry := service.NewRegistry(service.New("us", newFakeProvider(), st, service.Options{}))

		_, err := registry.Get("xx")

		var unsupported *service.UnsupportedCountryError
		Expect(errors.As(err, &unsupported)).To(BeTrue())
		Expect(unsupported.Code).To(Equal("xx"))
		Expect(err.Error()).To(Equal("no service found for country code: xx"))
	})

	It("builds a service per configured provider", func() {
		cfg := &core.Config{
			Cache: core.CacheConfig{Timeout: 24 * time.Hour, SearchTimeout: time.Hour},
			Providers: map[string]core.ProviderConfig{
				"us": {BaseURL: "http://localhost", Timeout: time.Second},
			},
		}

		registry, err := service.BuildRegistry(cfg, st, lock.NewLocal(), zap.NewNop().Sugar())
		Expect(err).NotTo(HaveOccurred())
		Expect(registry.Countries()).To(Equal([]string{"us"}))

		svc, err := registry.Get("us")
		Expect(err).NotTo(HaveOccurred())
		Expect(svc.Country()).To(Equal("us"))
	})

	It("refuses a configured country without a known upstream", func() {
		cfg := &core.Config{
			Providers: map[string]core.ProviderConfig{
				"xx": {BaseURL: "http://localhost", Timeout: time.Second},
			},
		}

		_, err := service.BuildRegistry(cfg, st, lock.NewLocal(), zap.NewNop().Sugar())

		var unsupported *service.UnsupportedCountryError
		Expect(errors.As(err, &unsupported)).To(BeTrue())
	})
})
