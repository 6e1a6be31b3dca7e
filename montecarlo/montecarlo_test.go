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

package montecarlo_test

import (
	"context"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

func defaultParams() portfolio.Params {
	return portfolio.Params{
		InitialCapital:      10_000_000,
		MonthlyContribution: 500_000,
		Strategy:            portfolio.FixedCash{CashPct: 20},
	}
}

var _ = Describe("RunMonteCarlo", func() {
	var (
		ctx   context.Context
		model market.Model
	)

	BeforeEach(func() {
		ctx = context.Background()
		model = market.ModelFromPercent(8, 15)
	})

	It("records one terminal value per iteration", func() {
		outcome, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 300, 5, model, montecarlo.WithSeed(7))
		Expect(err).To(BeNil())
		Expect(outcome.TerminalValues).To(HaveLen(300))
		Expect(outcome.Seed).To(Equal(int64(7)))
		Expect(outcome.BenchmarkBeatRate).To(BeNumerically(">=", 0))
		Expect(outcome.BenchmarkBeatRate).To(BeNumerically("<=", 100))
		for _, v := range outcome.TerminalValues {
			Expect(v).To(BeNumerically(">", 0))
		}
	})

	It("produces identical results for any worker count", func() {
		single, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 700, 3, model, montecarlo.WithSeed(42), montecarlo.WithWorkers(1))
		Expect(err).To(BeNil())
		parallel, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 700, 3, model, montecarlo.WithSeed(42), montecarlo.WithWorkers(4))
		Expect(err).To(BeNil())

		Expect(parallel.TerminalValues).To(Equal(single.TerminalValues))
		Expect(parallel.BenchmarkBeatRate).To(Equal(single.BenchmarkBeatRate))
		Expect(parallel.MedianBenchmarkReturnPct).To(Equal(single.MedianBenchmarkReturnPct))
		Expect(parallel.ID).ToNot(Equal(single.ID))
	})

	It("differs between seeds", func() {
		a, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 50, 2, model, montecarlo.WithSeed(1))
		Expect(err).To(BeNil())
		b, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 50, 2, model, montecarlo.WithSeed(2))
		Expect(err).To(BeNil())
		Expect(a.TerminalValues).ToNot(Equal(b.TerminalValues))
	})

	Context("on a market without volatility", func() {
		It("does not count ties as beating the benchmark", func() {
			params := defaultParams()
			params.Strategy = portfolio.FixedCash{CashPct: 0}

			outcome, err := montecarlo.RunMonteCarlo(ctx, params, 20, 1, market.Model{}, montecarlo.WithSeed(3))
			Expect(err).To(BeNil())
			Expect(outcome.BenchmarkBeatRate).To(Equal(0.0))
			Expect(outcome.MedianBenchmarkReturnPct).To(BeNumerically("~", 0, 1e-9))
			for _, v := range outcome.TerminalValues {
				Expect(v).To(BeNumerically("~", 16_500_000, 1e-3))
			}
		})

		It("beats the benchmark every time with free leverage in a rising market", func() {
			params := defaultParams()
			params.Strategy = portfolio.LeverageGlidePath{StartRatio: 2, EndRatio: 2}

			outcome, err := montecarlo.RunMonteCarlo(ctx, params, 20, 2, market.Model{Mean: 0.10}, montecarlo.WithSeed(3))
			Expect(err).To(BeNil())
			Expect(outcome.BenchmarkBeatRate).To(Equal(100.0))
			Expect(outcome.MedianBenchmarkReturnPct).To(BeNumerically(">", 0))
		})

		It("never beats the benchmark holding cash in a rising market", func() {
			outcome, err := montecarlo.RunMonteCarlo(ctx, defaultParams(), 20, 2, market.Model{Mean: 0.10}, montecarlo.WithSeed(3))
			Expect(err).To(BeNil())
			Expect(outcome.BenchmarkBeatRate).To(Equal(0.0))
		})
	})

	It("stops when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := montecarlo.RunMonteCarlo(cancelled, defaultParams(), 1_000, 10, model, montecarlo.WithSeed(1))
		Expect(err).To(MatchError(context.Canceled))
	})

	DescribeTable("rejects invalid requests",
		func(params portfolio.Params, iterations, years int, model market.Model, expected error) {
			_, err := montecarlo.RunMonteCarlo(context.Background(), params, iterations, years, model)
			Expect(err).To(MatchError(expected))
		},
		Entry("zero iterations", defaultParams(), 0, 10, market.Model{}, montecarlo.ErrInvalidIterations),
		Entry("zero duration", defaultParams(), 10, 0, market.Model{}, montecarlo.ErrInvalidDuration),
		Entry("negative capital", portfolio.Params{InitialCapital: -1, Strategy: portfolio.FixedCash{}}, 10, 1, market.Model{}, portfolio.ErrNegativeCapital),
		Entry("missing strategy", portfolio.Params{InitialCapital: 1}, 10, 1, market.Model{}, portfolio.ErrMissingStrategy),
		Entry("negative volatility", defaultParams(), 10, 1, market.Model{Volatility: -0.1}, market.ErrInvalidVolatility),
	)
})

var _ = Describe("RunBenchmark", func() {
	It("grows then contributes every month", func() {
		path := []market.Point{
			{Month: 0, Price: 100, Return: 0},
			{Month: 1, Price: 110, Return: 0.10},
			{Month: 2, Price: 99, Return: -0.10},
		}
		params := portfolio.Params{InitialCapital: 1000, MonthlyContribution: 100, Strategy: portfolio.FixedCash{}}

		bench := montecarlo.RunBenchmark(params, path)
		// 1000 -> 1100 -> 1310 -> 1279
		Expect(bench.Value).To(BeNumerically("~", 1279, 1e-9))
		Expect(bench.Contribution).To(Equal(1300.0))
		Expect(bench.Profit()).To(BeNumerically("~", -21, 1e-9))
		Expect(bench.ReturnPct()).To(BeNumerically("~", -21.0/1300*100, 1e-9))
	})

	It("reports a zero return when nothing was contributed", func() {
		path := []market.Point{{Month: 0, Price: 100}, {Month: 1, Price: 110, Return: 0.10}}
		bench := montecarlo.RunBenchmark(portfolio.Params{Strategy: portfolio.FixedCash{}}, path)
		Expect(bench.Contribution).To(Equal(0.0))
		Expect(bench.ReturnPct()).To(Equal(0.0))
	})
})

var _ = Describe("running trials", func() {
	It("turns a panicking trial into an error", func() {
		err := montecarlo.RunTrials(context.Background(), 600, montecarlo.Options{Seed: 1, Workers: 2}, func(idx int, src market.UniformSource) error {
			if idx == 300 {
				panic("broken trial")
			}
			return nil
		})
		Expect(err).To(MatchError(montecarlo.ErrTrialPanic))
		Expect(err.Error()).To(ContainSubstring("broken trial"))
	})
})

var _ = Describe("SamplePaths", func() {
	It("sorts paths by final value", func() {
		res, err := montecarlo.SamplePaths(context.Background(), defaultParams(), 51, 2, market.ModelFromPercent(8, 15), montecarlo.WithSeed(11), montecarlo.WithWorkers(3))
		Expect(err).To(BeNil())
		Expect(res.Paths).To(HaveLen(51))
		Expect(res.MedianIndex).To(Equal(25))

		finals := make([]float64, len(res.Paths))
		for ii, path := range res.Paths {
			Expect(path).To(HaveLen(25))
			finals[ii] = path[len(path)-1].TotalValue
		}
		Expect(sort.Float64sAreSorted(finals)).To(BeTrue())

		median := res.Median()
		Expect(median[len(median)-1].TotalValue).To(BeNumerically(">=", finals[0]))
		Expect(median[len(median)-1].TotalValue).To(BeNumerically("<=", finals[50]))
	})

	It("shares the invested capital line across paths", func() {
		res, err := montecarlo.SamplePaths(context.Background(), defaultParams(), 10, 1, market.ModelFromPercent(8, 15), montecarlo.WithSeed(5))
		Expect(err).To(BeNil())

		invested := res.Invested()
		Expect(invested).To(HaveLen(13))
		Expect(invested[0]).To(Equal(10_500_000.0))
		for _, path := range res.Paths {
			Expect(portfolio.Contributions(path)).To(Equal(invested))
		}
	})

	It("matches the terminal values of a Monte Carlo run with the same seed", func() {
		outcome, err := montecarlo.RunMonteCarlo(context.Background(), defaultParams(), 30, 2, market.ModelFromPercent(8, 15), montecarlo.WithSeed(9))
		Expect(err).To(BeNil())
		res, err := montecarlo.SamplePaths(context.Background(), defaultParams(), 30, 2, market.ModelFromPercent(8, 15), montecarlo.WithSeed(9))
		Expect(err).To(BeNil())

		sorted := append([]float64{}, outcome.TerminalValues...)
		sort.Float64s(sorted)
		for ii, path := range res.Paths {
			Expect(path[len(path)-1].TotalValue).To(Equal(sorted[ii]))
		}
	})

	It("rejects a zero count", func() {
		_, err := montecarlo.SamplePaths(context.Background(), defaultParams(), 0, 1, market.Model{})
		Expect(err).To(MatchError(montecarlo.ErrInvalidIterations))
	})
})
