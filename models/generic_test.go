package models_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shubhamc1947/company-data/models"
)

var _ = Describe("Staleness", func() {
	const day = 24 * time.Hour

	fetched := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	DescribeTable("IsExpired",
		func(age time.Duration, expired bool) {
			Expect(models.IsExpired(fetched.Unix(), fetched.Add(age), day)).To(Equal(expired))
		},
		Entry("just fetched", time.Duration(0), false),
		Entry("exactly at the timeout", 86400*time.Second, false),
		Entry("one second past the timeout", 86401*time.Second, true),
	)

	It("applies to profiles and search results alike", func() {
		profile := &models.CompanyProfile{LastUpdatedTS: fetched.Unix()}
		search := &models.SearchCache{LastUpdatedTS: fetched.Unix()}

		Expect(profile.IsStale(fetched.Add(time.Hour), time.Hour)).To(BeFalse())
		Expect(search.IsStale(fetched.Add(time.Hour+time.Second), time.Hour)).To(BeTrue())
	})
})
