// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scenario_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/scenario"
	"github.com/penny-vault/pv-montecarlo/stats"
)

var _ = Describe("Scenario", func() {
	It("has the documented defaults", func() {
		sc := scenario.Default()
		Expect(sc.InitialCapital).To(Equal(10_000_000.0))
		Expect(sc.MonthlyContribution).To(Equal(500_000.0))
		Expect(sc.DurationYears).To(Equal(10))
		Expect(sc.Strategy.Kind).To(Equal(portfolio.FIXED))
		Expect(sc.Iterations).To(Equal(10_000))
		Expect(sc.Bins).To(Equal(25))
		Expect(sc.PathCount).To(Equal(50))

		params, err := sc.Params()
		Expect(err).To(BeNil())
		Expect(params.Strategy).To(Equal(portfolio.FixedCash{CashPct: 20}))
		Expect(sc.Model()).To(Equal(market.Model{Mean: 0.08, Volatility: 0.15}))
		Expect(sc.Months()).To(Equal(120))
	})

	Context("loading toml", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "scenario")
			Expect(err).To(BeNil())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("overrides only the keys present in the file", func() {
			fn := filepath.Join(dir, "leverage.toml")
			Expect(os.WriteFile(fn, []byte(`
initial_capital = 50000000
duration_years = 20

[strategy]
kind = "GLIDE_LEVERAGE"
start_ratio = 1.5
end_ratio = 1.0
borrow_cost = 4.5

[market]
volatility = 20
`), 0600)).To(Succeed())

			sc, err := scenario.Load(fn)
			Expect(err).To(BeNil())
			Expect(sc.InitialCapital).To(Equal(50_000_000.0))
			Expect(sc.MonthlyContribution).To(Equal(500_000.0))
			Expect(sc.DurationYears).To(Equal(20))
			Expect(sc.Market.ExpectedReturn).To(Equal(8.0))
			Expect(sc.Market.Volatility).To(Equal(20.0))

			params, err := sc.Params()
			Expect(err).To(BeNil())
			Expect(params.Strategy).To(Equal(portfolio.LeverageGlidePath{StartRatio: 1.5, EndRatio: 1.0, BorrowCostAnnualPct: 4.5}))
		})

		It("accepts amounts written as floats", func() {
			fn := filepath.Join(dir, "floats.toml")
			Expect(os.WriteFile(fn, []byte(`
initial_capital = 2.5e7
monthly_contribution = 300000.0
iterations = 500
count = 10
seed = 42

[market]
expected_return = 6.5
`), 0600)).To(Succeed())

			sc, err := scenario.Load(fn)
			Expect(err).To(BeNil())
			Expect(sc.InitialCapital).To(Equal(25_000_000.0))
			Expect(sc.MonthlyContribution).To(Equal(300_000.0))
			Expect(sc.Market.ExpectedReturn).To(Equal(6.5))
			Expect(sc.Market.Volatility).To(Equal(15.0))
			Expect(sc.Iterations).To(Equal(500))
			Expect(sc.PathCount).To(Equal(10))
			Expect(sc.Seed).To(Equal(int64(42)))
		})

		It("rejects amounts that are not numbers", func() {
			fn := filepath.Join(dir, "words.toml")
			Expect(os.WriteFile(fn, []byte(`initial_capital = "a lot"`), 0600)).To(Succeed())

			_, err := scenario.Load(fn)
			Expect(err).To(MatchError(scenario.ErrInvalidScenario))
			Expect(err.Error()).To(ContainSubstring("initial_capital"))
		})

		It("reports malformed files", func() {
			fn := filepath.Join(dir, "broken.toml")
			Expect(os.WriteFile(fn, []byte("initial_capital = ["), 0600)).To(Succeed())

			_, err := scenario.Load(fn)
			Expect(err).To(MatchError(scenario.ErrInvalidScenario))
			Expect(scenario.IsValidationError(err)).To(BeTrue())
		})

		It("reports missing files", func() {
			_, err := scenario.Load(filepath.Join(dir, "missing.toml"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	DescribeTable("rejects invalid scenarios",
		func(modify func(*scenario.Scenario), expected error) {
			sc := scenario.Default()
			modify(&sc)
			_, err := sc.Request()
			Expect(err).To(MatchError(expected))
			Expect(scenario.IsValidationError(err)).To(BeTrue())
		},
		Entry("negative capital", func(sc *scenario.Scenario) { sc.InitialCapital = -1 }, portfolio.ErrNegativeCapital),
		Entry("negative contribution", func(sc *scenario.Scenario) { sc.MonthlyContribution = -1 }, portfolio.ErrNegativeContribution),
		Entry("unknown strategy", func(sc *scenario.Scenario) { sc.Strategy.Kind = "YOLO" }, portfolio.ErrUnknownStrategy),
		Entry("cash above 100%", func(sc *scenario.Scenario) { sc.Strategy.StartRatio = 120 }, portfolio.ErrInvalidCashPct),
		Entry("negative volatility", func(sc *scenario.Scenario) { sc.Market.Volatility = -5 }, market.ErrInvalidVolatility),
		Entry("zero duration", func(sc *scenario.Scenario) { sc.DurationYears = 0 }, montecarlo.ErrInvalidDuration),
		Entry("duration beyond 60 years", func(sc *scenario.Scenario) { sc.DurationYears = 61 }, scenario.ErrDurationOutOfRange),
		Entry("huge duration", func(sc *scenario.Scenario) { sc.DurationYears = 288230376151711744 }, scenario.ErrDurationOutOfRange),
		Entry("negative iterations", func(sc *scenario.Scenario) { sc.Iterations = -1 }, montecarlo.ErrInvalidIterations),
		Entry("too many iterations", func(sc *scenario.Scenario) { sc.Iterations = scenario.MaxIterations + 1 }, scenario.ErrTooManyIterations),
		Entry("too many paths", func(sc *scenario.Scenario) { sc.PathCount = scenario.MaxPathCount + 1 }, scenario.ErrTooManyPaths),
		Entry("negative bins", func(sc *scenario.Scenario) { sc.Bins = -3 }, stats.ErrInvalidBinCount),
		Entry("too many bins", func(sc *scenario.Scenario) { sc.Bins = scenario.MaxBins + 1 }, scenario.ErrTooManyBins),
	)

	It("accepts the longest allowed duration", func() {
		sc := scenario.Default()
		sc.DurationYears = scenario.MaxDurationYears
		req, err := sc.Request()
		Expect(err).To(BeNil())
		Expect(req.DurationYears).To(Equal(60))
	})

	It("refuses to project an out of range duration", func() {
		sc := scenario.Default()
		sc.DurationYears = 1_000_000
		_, err := sc.Project(market.NewSource(1))
		Expect(err).To(MatchError(scenario.ErrDurationOutOfRange))
	})

	It("projects a single path", func() {
		sc := scenario.Default()
		sc.DurationYears = 1

		steps, err := sc.Project(market.NewSource(1))
		Expect(err).To(BeNil())
		Expect(steps).To(HaveLen(13))
		Expect(steps[12].CumulativeContribution).To(Equal(16_500_000.0))
	})
})
