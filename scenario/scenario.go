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

// Package scenario describes a simulation request the way users write it:
// amounts in won, rates in percent and the strategy in its flat form. It is
// read from TOML files, command line flags and JSON request bodies.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/stats"
)

// Bounds on what a single scenario may ask for
const (
	MinDurationYears = 1
	MaxDurationYears = 60
	MaxIterations    = 100_000
	MaxPathCount     = 1_000
	MaxBins          = 500
)

var (
	ErrInvalidScenario    = errors.New("invalid scenario")
	ErrDurationOutOfRange = fmt.Errorf("duration must be between %d and %d years", MinDurationYears, MaxDurationYears)
	ErrTooManyIterations  = fmt.Errorf("iterations must not exceed %d", MaxIterations)
	ErrTooManyPaths       = fmt.Errorf("path count must not exceed %d", MaxPathCount)
	ErrTooManyBins        = fmt.Errorf("bin count must not exceed %d", MaxBins)
)

// Market holds the annual market assumptions in percent
type Market struct {
	ExpectedReturn float64 `json:"expectedReturn" toml:"expected_return"`
	Volatility     float64 `json:"volatility" toml:"volatility"`
}

// Scenario is a complete simulation request
type Scenario struct {
	InitialCapital      float64                  `json:"initialCapital" toml:"initial_capital"`
	MonthlyContribution float64                  `json:"monthlyContribution" toml:"monthly_contribution"`
	DurationYears       int                      `json:"durationYears" toml:"duration_years"`
	Strategy            portfolio.StrategyConfig `json:"strategy" toml:"strategy"`
	Market              Market                   `json:"market" toml:"market"`

	Iterations int   `json:"iterations,omitempty" toml:"iterations,omitempty"`
	Bins       int   `json:"bins,omitempty" toml:"bins,omitempty"`
	PathCount  int   `json:"count,omitempty" toml:"count,omitempty"`
	Seed       int64 `json:"seed,omitempty" toml:"seed,omitempty"`
}

// Default is the scenario used when nothing else is given: 1,000만원 up
// front, 50만원 a month for 10 years, 20% held in cash, 8% expected return
// with 15% volatility.
func Default() Scenario {
	return Scenario{
		InitialCapital:      10_000_000,
		MonthlyContribution: 500_000,
		DurationYears:       10,
		Strategy: portfolio.StrategyConfig{
			Kind:       portfolio.FIXED,
			StartRatio: 20,
			EndRatio:   20,
			BorrowCost: 5,
		},
		Market: Market{
			ExpectedReturn: 8,
			Volatility:     15,
		},
		Iterations: montecarlo.DefaultIterations,
		Bins:       stats.DefaultBinCount,
		PathCount:  montecarlo.DefaultPathCount,
	}
}

// Load reads a TOML scenario file. Keys missing from the file keep their
// Default values.
func Load(path string) (Scenario, error) {
	sc := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}

	var file fileScenario
	if err := toml.Unmarshal(buf, &file); err != nil {
		return sc, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, path, err)
	}
	if err := file.apply(&sc); err != nil {
		return sc, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, path, err)
	}

	return sc, nil
}

// Params converts the scenario into validated simulation parameters
func (sc Scenario) Params() (portfolio.Params, error) {
	strat, err := sc.Strategy.Strategy()
	if err != nil {
		return portfolio.Params{}, err
	}

	params := portfolio.Params{
		InitialCapital:      sc.InitialCapital,
		MonthlyContribution: sc.MonthlyContribution,
		Strategy:            strat,
	}
	if err := params.Validate(); err != nil {
		return portfolio.Params{}, err
	}

	return params, nil
}

// Model returns the market model with the percentages converted to decimals
func (sc Scenario) Model() market.Model {
	return market.ModelFromPercent(sc.Market.ExpectedReturn, sc.Market.Volatility)
}

// Months is the length of the simulated path
func (sc Scenario) Months() int {
	return sc.DurationYears * market.MonthsPerYear
}

// Bounds checks the duration and the sizes of the requested outputs. Zero
// iterations, bins or count select the defaults.
func (sc Scenario) Bounds() error {
	switch {
	case sc.DurationYears <= 0:
		return montecarlo.ErrInvalidDuration
	case sc.DurationYears > MaxDurationYears:
		return ErrDurationOutOfRange
	case sc.Iterations < 0:
		return montecarlo.ErrInvalidIterations
	case sc.Iterations > MaxIterations:
		return ErrTooManyIterations
	case sc.PathCount < 0:
		return montecarlo.ErrInvalidIterations
	case sc.PathCount > MaxPathCount:
		return ErrTooManyPaths
	case sc.Bins < 0:
		return stats.ErrInvalidBinCount
	case sc.Bins > MaxBins:
		return ErrTooManyBins
	}
	return nil
}

// Request converts the scenario into a Monte Carlo analysis request
func (sc Scenario) Request() (montecarlo.Request, error) {
	params, err := sc.Params()
	if err != nil {
		return montecarlo.Request{}, err
	}

	model := sc.Model()
	if err := model.Validate(); err != nil {
		return montecarlo.Request{}, err
	}

	if err := sc.Bounds(); err != nil {
		return montecarlo.Request{}, err
	}

	return montecarlo.Request{
		Params:        params,
		DurationYears: sc.DurationYears,
		Model:         model,
		Iterations:    sc.Iterations,
		Bins:          sc.Bins,
		PathCount:     sc.PathCount,
	}, nil
}

// Options returns the execution options implied by the scenario
func (sc Scenario) Options(workers int) []montecarlo.Option {
	return []montecarlo.Option{
		montecarlo.WithSeed(sc.Seed),
		montecarlo.WithWorkers(workers),
	}
}

// Project runs a single simulation over one generated path
func (sc Scenario) Project(src market.UniformSource) ([]portfolio.Step, error) {
	req, err := sc.Request()
	if err != nil {
		return nil, err
	}

	path, err := req.Model.Path(src, sc.Months(), market.DefaultInitialPrice)
	if err != nil {
		return nil, err
	}

	return portfolio.Simulate(req.Params, path), nil
}

// IsValidationError reports whether err was caused by bad input rather than
// a failure while running
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidScenario,
		ErrDurationOutOfRange,
		ErrTooManyIterations,
		ErrTooManyPaths,
		ErrTooManyBins,
		market.ErrInvalidMonths,
		market.ErrInvalidPrice,
		market.ErrInvalidVolatility,
		portfolio.ErrNegativeCapital,
		portfolio.ErrNegativeContribution,
		portfolio.ErrInvalidCashPct,
		portfolio.ErrInvalidLeverage,
		portfolio.ErrUnknownStrategy,
		portfolio.ErrMissingStrategy,
		montecarlo.ErrInvalidIterations,
		montecarlo.ErrInvalidDuration,
		stats.ErrInvalidBinCount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
