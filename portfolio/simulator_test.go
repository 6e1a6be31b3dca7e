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

package portfolio_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

func flatPath(months int, ret float64) []market.Point {
	path := make([]market.Point, months)
	price := 100.0
	for ii := range path {
		r := ret
		if ii == 0 {
			r = 0
		}
		price *= 1 + r
		path[ii] = market.Point{Month: ii, Price: price, Return: r}
	}
	return path
}

func ratios(steps []portfolio.Step) []float64 {
	res := make([]float64, len(steps))
	for ii, step := range steps {
		res[ii] = step.TargetRatio
	}
	return res
}

var _ = Describe("Simulator", func() {
	var (
		path []market.Point
	)

	BeforeEach(func() {
		var err error
		path, err = market.GeneratePath(market.NewSource(2024), 120, 0.08, 0.15, 100)
		Expect(err).To(BeNil())
	})

	DescribeTable("keeps the ledger consistent",
		func(strat portfolio.Strategy) {
			params := portfolio.Params{
				InitialCapital:      10_000_000,
				MonthlyContribution: 500_000,
				Strategy:            strat,
			}
			Expect(params.Validate()).To(Succeed())

			steps := portfolio.Simulate(params, path)
			Expect(steps).To(HaveLen(len(path)))

			for ii, step := range steps {
				Expect(step.Month).To(Equal(path[ii].Month))
				Expect(step.AssetPrice).To(Equal(path[ii].Price))
				Expect(step.TotalValue).To(BeNumerically("~", step.CashValue+step.AssetValue, math.Abs(step.TotalValue)*1e-6))
				Expect(step.CumulativeContribution).To(Equal(10_000_000 + float64(ii+1)*500_000))
			}
		},
		Entry("fixed", portfolio.FixedCash{CashPct: 20}),
		Entry("cash glide path", portfolio.CashGlidePath{StartCashPct: 50, EndCashPct: 0}),
		Entry("leverage glide path", portfolio.LeverageGlidePath{StartRatio: 1.5, EndRatio: 1, BorrowCostAnnualPct: 5}),
	)

	Context("with the FIXED strategy", func() {
		It("holds a constant target ratio", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1_000_000,
				Strategy:       portfolio.FixedCash{CashPct: 20},
			}, path)

			for _, step := range steps {
				Expect(step.TargetRatio).To(Equal(1 - 20.0/100))
			}
		})

		It("keeps the value flat when the market does not move", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital:      10_000_000,
				MonthlyContribution: 0,
				Strategy:            portfolio.FixedCash{CashPct: 0},
			}, flatPath(12, 0))

			Expect(steps).To(HaveLen(12))
			for _, step := range steps {
				Expect(step.TotalValue).To(Equal(10_000_000.0))
				Expect(step.CumulativeContribution).To(Equal(10_000_000.0))
			}
		})

		It("grows the asset before adding the contribution and rebalancing", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital:      1000,
				MonthlyContribution: 100,
				Strategy:            portfolio.FixedCash{CashPct: 50},
			}, flatPath(2, 0.1))

			Expect(steps[0].TotalValue).To(BeNumerically("~", 1100, 1e-9))
			Expect(steps[0].AssetValue).To(BeNumerically("~", 550, 1e-9))
			Expect(steps[0].CashValue).To(BeNumerically("~", 550, 1e-9))

			Expect(steps[1].TotalValue).To(BeNumerically("~", 1255, 1e-9))
			Expect(steps[1].AssetValue).To(BeNumerically("~", 627.5, 1e-9))
			Expect(steps[1].CashValue).To(BeNumerically("~", 627.5, 1e-9))
			Expect(steps[1].CumulativeContribution).To(Equal(1200.0))
		})
	})

	Context("with the GLIDE_CASH strategy", func() {
		It("glides from the start ratio to the end ratio", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1_000_000,
				Strategy:       portfolio.CashGlidePath{StartCashPct: 40, EndCashPct: 10},
			}, path)

			r := ratios(steps)
			Expect(r[0]).To(BeNumerically("~", 0.6, 1e-12))
			Expect(r[len(r)-1]).To(BeNumerically("~", 0.9, 1e-12))
			for ii := 1; ii < len(r); ii++ {
				Expect(r[ii]).To(BeNumerically(">=", r[ii-1]))
			}
		})

		It("uses the start ratio for a single month", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1000,
				Strategy:       portfolio.CashGlidePath{StartCashPct: 30, EndCashPct: 0},
			}, flatPath(1, 0))

			Expect(steps).To(HaveLen(1))
			Expect(steps[0].TargetRatio).To(BeNumerically("~", 0.7, 1e-12))
			Expect(steps[0].CashValue).To(BeNumerically("~", 300, 1e-9))
		})
	})

	Context("with the GLIDE_LEVERAGE strategy", func() {
		It("glides the exposure itself", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1_000_000,
				Strategy:       portfolio.LeverageGlidePath{StartRatio: 2, EndRatio: 1, BorrowCostAnnualPct: 5},
			}, path)

			r := ratios(steps)
			Expect(r[0]).To(Equal(2.0))
			Expect(r[len(r)-1]).To(Equal(1.0))
			for ii := 1; ii < len(r); ii++ {
				Expect(r[ii]).To(BeNumerically("<=", r[ii-1]))
			}
		})

		It("charges interest on borrowed cash", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1000,
				Strategy:       portfolio.LeverageGlidePath{StartRatio: 2, EndRatio: 2, BorrowCostAnnualPct: 12},
			}, flatPath(2, 0.1))

			// month 0: 2000 asset, -1000 cash, 10 interest
			Expect(steps[0].TotalValue).To(BeNumerically("~", 990, 1e-9))
			Expect(steps[0].AssetValue).To(BeNumerically("~", 1980, 1e-9))
			Expect(steps[0].CashValue).To(BeNumerically("~", -990, 1e-9))

			// month 1: asset grows to 2178, 9.9 interest
			Expect(steps[1].TotalValue).To(BeNumerically("~", 1178.1, 1e-9))
			Expect(steps[1].AssetValue).To(BeNumerically("~", 2356.2, 1e-9))
			Expect(steps[1].CashValue).To(BeNumerically("~", -1178.1, 1e-9))
		})

		It("matches FIXED with no cash at a leverage of 1", func() {
			leveraged := portfolio.Simulate(portfolio.Params{
				InitialCapital:      10_000_000,
				MonthlyContribution: 500_000,
				Strategy:            portfolio.LeverageGlidePath{StartRatio: 1, EndRatio: 1, BorrowCostAnnualPct: 25},
			}, path)
			fixed := portfolio.Simulate(portfolio.Params{
				InitialCapital:      10_000_000,
				MonthlyContribution: 500_000,
				Strategy:            portfolio.FixedCash{CashPct: 0},
			}, path)

			Expect(leveraged).To(HaveLen(len(fixed)))
			for ii := range fixed {
				Expect(leveraged[ii].TargetRatio).To(Equal(fixed[ii].TargetRatio))
				Expect(leveraged[ii].TotalValue).To(BeNumerically("~", fixed[ii].TotalValue, fixed[ii].TotalValue*1e-9))
				Expect(leveraged[ii].CumulativeContribution).To(Equal(fixed[ii].CumulativeContribution))
			}
		})
	})

	Context("with an empty path", func() {
		It("returns no steps", func() {
			steps := portfolio.Simulate(portfolio.Params{
				InitialCapital: 1000,
				Strategy:       portfolio.FixedCash{CashPct: 10},
			}, []market.Point{})
			Expect(steps).To(BeEmpty())
		})
	})

	It("is deterministic", func() {
		params := portfolio.Params{
			InitialCapital:      5_000,
			MonthlyContribution: 250,
			Strategy:            portfolio.CashGlidePath{StartCashPct: 10, EndCashPct: 60},
		}
		Expect(portfolio.Simulate(params, path)).To(Equal(portfolio.Simulate(params, path)))
	})
})
