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

package portfolio

import (
	"math"

	"github.com/penny-vault/pv-montecarlo/market"
)

// Params configures a simulation run
type Params struct {
	InitialCapital      float64
	MonthlyContribution float64
	Strategy            Strategy
}

// Validate checks the parameters before they are handed to Simulate. Simulate
// itself never fails.
func (p Params) Validate() error {
	if p.InitialCapital < 0 || math.IsNaN(p.InitialCapital) {
		return ErrNegativeCapital
	}
	if p.MonthlyContribution < 0 || math.IsNaN(p.MonthlyContribution) {
		return ErrNegativeContribution
	}
	if p.Strategy == nil {
		return ErrMissingStrategy
	}
	return p.Strategy.validate()
}

// Step is the state of the portfolio at the end of one month.
// TotalValue == CashValue + AssetValue.
type Step struct {
	Month                  int     `json:"month"`
	TotalValue             float64 `json:"totalValue"`
	CashValue              float64 `json:"cashValue"`
	AssetValue             float64 `json:"assetValue"`
	AssetPrice             float64 `json:"assetPrice"`
	CumulativeContribution float64 `json:"cumulativeContribution"`
	TargetRatio            float64 `json:"targetRatio"`
}

// Simulate runs the portfolio over path and returns one step per point. The
// initial capital is split by the strategy's starting ratio, then every month
// is processed in this order:
//
//  1. target ratio for the month from the strategy and the run progress
//  2. asset growth by the month's return
//  3. interest on borrowed (negative) cash
//  4. monthly contribution added to cash
//  5. rebalance to the target ratio computed in 1
//
// Reordering these changes the results.
func Simulate(params Params, path []market.Point) []Step {
	steps := make([]Step, 0, len(path))
	if params.Strategy == nil {
		return steps
	}

	strat := params.Strategy
	assetValue := params.InitialCapital * strat.TargetRatio(0)
	cashValue := params.InitialCapital - assetValue
	contribution := params.InitialCapital

	totalMonths := len(path)
	denom := float64(totalMonths - 1)
	if totalMonths <= 1 {
		denom = 1
	}
	borrowRate := strat.BorrowRate()

	for ii, pt := range path {
		targetRatio := strat.TargetRatio(float64(ii) / denom)

		assetValue *= 1 + pt.Return

		if cashValue < 0 {
			cashValue -= math.Abs(cashValue) * borrowRate
		}

		cashValue += params.MonthlyContribution
		contribution += params.MonthlyContribution

		totalValue := assetValue + cashValue
		diff := totalValue*targetRatio - assetValue
		assetValue += diff
		cashValue -= diff

		steps = append(steps, Step{
			Month:                  pt.Month,
			TotalValue:             assetValue + cashValue,
			CashValue:              cashValue,
			AssetValue:             assetValue,
			AssetPrice:             pt.Price,
			CumulativeContribution: contribution,
			TargetRatio:            targetRatio,
		})
	}

	return steps
}
