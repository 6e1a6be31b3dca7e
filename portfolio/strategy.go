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
	"fmt"
	"strings"
)

// StrategyKind names one of the supported rebalancing policies
type StrategyKind string

const (
	FIXED          StrategyKind = "FIXED"
	GLIDE_CASH     StrategyKind = "GLIDE_CASH"     //nolint:revive,stylecheck
	GLIDE_LEVERAGE StrategyKind = "GLIDE_LEVERAGE" //nolint:revive,stylecheck
)

// Strategy is the rebalancing policy of a portfolio. The set of strategies is
// closed: FixedCash, CashGlidePath and LeverageGlidePath. Each one carries only
// the parameters it interprets.
type Strategy interface {
	Kind() StrategyKind

	// TargetRatio is the fraction of total value held in the asset at the
	// given progress through the run (0 = first month, 1 = last month).
	// Values above 1 mean the position is leveraged with borrowed cash.
	TargetRatio(progress float64) float64

	// BorrowRate is the monthly interest rate charged on negative cash
	BorrowRate() float64

	fmt.Stringer

	validate() error
}

// FixedCash keeps a constant share of the portfolio in cash
type FixedCash struct {
	CashPct float64
}

func (s FixedCash) Kind() StrategyKind { return FIXED }

func (s FixedCash) TargetRatio(progress float64) float64 {
	return 1 - (s.CashPct / 100)
}

func (s FixedCash) BorrowRate() float64 { return 0 }

func (s FixedCash) String() string {
	return fmt.Sprintf("fixed %.1f%% cash", s.CashPct)
}

func (s FixedCash) validate() error {
	return validateCashPct(s.CashPct)
}

// CashGlidePath moves the cash share linearly from StartCashPct in the first
// month to EndCashPct in the last month.
type CashGlidePath struct {
	StartCashPct float64
	EndCashPct   float64
}

func (s CashGlidePath) Kind() StrategyKind { return GLIDE_CASH }

func (s CashGlidePath) TargetRatio(progress float64) float64 {
	cashPct := s.StartCashPct + (s.EndCashPct-s.StartCashPct)*progress
	return 1 - (cashPct / 100)
}

func (s CashGlidePath) BorrowRate() float64 { return 0 }

func (s CashGlidePath) String() string {
	return fmt.Sprintf("cash glide %.1f%% -> %.1f%%", s.StartCashPct, s.EndCashPct)
}

func (s CashGlidePath) validate() error {
	if err := validateCashPct(s.StartCashPct); err != nil {
		return err
	}
	return validateCashPct(s.EndCashPct)
}

// LeverageGlidePath moves the asset exposure linearly from StartRatio to
// EndRatio. A ratio of 1.5 holds 150% of total value in the asset and borrows
// the difference at BorrowCostAnnualPct.
type LeverageGlidePath struct {
	StartRatio          float64
	EndRatio            float64
	BorrowCostAnnualPct float64
}

func (s LeverageGlidePath) Kind() StrategyKind { return GLIDE_LEVERAGE }

func (s LeverageGlidePath) TargetRatio(progress float64) float64 {
	return s.StartRatio + (s.EndRatio-s.StartRatio)*progress
}

func (s LeverageGlidePath) BorrowRate() float64 {
	return s.BorrowCostAnnualPct / 100 / 12
}

func (s LeverageGlidePath) String() string {
	return fmt.Sprintf("leverage glide %.2fx -> %.2fx @ %.2f%%", s.StartRatio, s.EndRatio, s.BorrowCostAnnualPct)
}

func (s LeverageGlidePath) validate() error {
	if s.StartRatio < 0 || s.EndRatio < 0 {
		return ErrInvalidLeverage
	}
	return nil
}

func validateCashPct(pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: %.2f", ErrInvalidCashPct, pct)
	}
	return nil
}

// StrategyConfig is the flat representation of a strategy used by scenario
// files, command line flags and the HTTP API. StartRatio and EndRatio are cash
// percentages for FIXED and GLIDE_CASH and exposure multiples for
// GLIDE_LEVERAGE.
type StrategyConfig struct {
	Kind       StrategyKind `json:"kind" toml:"kind"`
	StartRatio float64      `json:"startRatio" toml:"start_ratio"`
	EndRatio   float64      `json:"endRatio" toml:"end_ratio"`
	BorrowCost float64      `json:"borrowCost" toml:"borrow_cost"`
}

// Strategy converts the flat configuration into its strategy variant
func (c StrategyConfig) Strategy() (Strategy, error) {
	var strat Strategy
	switch StrategyKind(strings.ToUpper(string(c.Kind))) {
	case FIXED:
		strat = FixedCash{CashPct: c.StartRatio}
	case GLIDE_CASH:
		strat = CashGlidePath{StartCashPct: c.StartRatio, EndCashPct: c.EndRatio}
	case GLIDE_LEVERAGE:
		strat = LeverageGlidePath{StartRatio: c.StartRatio, EndRatio: c.EndRatio, BorrowCostAnnualPct: c.BorrowCost}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Kind)
	}

	if err := strat.validate(); err != nil {
		return nil, err
	}
	return strat, nil
}

// ConfigFor flattens a strategy back into its configuration form
func ConfigFor(strat Strategy) StrategyConfig {
	switch s := strat.(type) {
	case FixedCash:
		return StrategyConfig{Kind: FIXED, StartRatio: s.CashPct, EndRatio: s.CashPct}
	case CashGlidePath:
		return StrategyConfig{Kind: GLIDE_CASH, StartRatio: s.StartCashPct, EndRatio: s.EndCashPct}
	case LeverageGlidePath:
		return StrategyConfig{Kind: GLIDE_LEVERAGE, StartRatio: s.StartRatio, EndRatio: s.EndRatio, BorrowCost: s.BorrowCostAnnualPct}
	}
	return StrategyConfig{}
}
