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

package montecarlo

import (
	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

// Benchmark is a portfolio fully invested in the asset that never rebalances
// and receives the same contributions as the simulated portfolio.
type Benchmark struct {
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// Profit of the benchmark over everything contributed
func (b Benchmark) Profit() float64 {
	return b.Value - b.Contribution
}

// ReturnPct is profit as a percentage of contributions. It is 0 when nothing
// was contributed.
func (b Benchmark) ReturnPct() float64 {
	if b.Contribution == 0 {
		return 0
	}
	return b.Profit() / b.Contribution * 100
}

// RunBenchmark accumulates the benchmark over path: every month the value
// grows by the month's return and the contribution is added.
func RunBenchmark(params portfolio.Params, path []market.Point) Benchmark {
	bench := Benchmark{
		Value:        params.InitialCapital,
		Contribution: params.InitialCapital,
	}

	for _, pt := range path {
		bench.Value *= 1 + pt.Return
		bench.Value += params.MonthlyContribution
		bench.Contribution += params.MonthlyContribution
	}

	return bench
}

// beats reports whether the portfolio made strictly more profit than the
// benchmark. Ties go to the benchmark.
func beats(steps []portfolio.Step, bench Benchmark) bool {
	final := steps[len(steps)-1]
	return final.TotalValue-final.CumulativeContribution > bench.Profit()
}
