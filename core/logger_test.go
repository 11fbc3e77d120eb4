package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/shubhamc1947/company-data/core"
)

var _ = Describe("NewLogger", func() {
	It("logs debug in development", func() {
		logger, err := core.NewLogger("development", "")
		Expect(err).NotTo(HaveOccurred())

		Expect(logger.Desugar().Core().Enabled(zapcore.DebugLevel)).To(BeTrue())
	})

	It("starts at info in production", func() {
		logger, err := core.NewLogger("production", "")
		Expect(err).NotTo(HaveOccurred())

		levels := logger.Desugar().Core()
		Expect(levels.Enabled(zapcore.InfoLevel)).To(BeTrue())
		Expect(levels.Enabled(zapcore.DebugLevel)).To(BeFalse())
	})

	It("honours an explicit level", func() {
		logger, err := core.NewLogger("production", "warn")
		Expect(err).NotTo(HaveOccurred())

		levels := logger.Desugar().Core()
		Expect(levels.Enabled(zapcore.WarnLevel)).To(BeTrue())
		Expect(levels.Enabled(zapcore.InfoLevel)).To(BeFalse())
	})

	It("rejects an unknown level", func() {
		_, err := core.NewLogger("production", "chatty")
		Expect(err).To(MatchError(ContainSubstring("invalid log level")))
	})
})
