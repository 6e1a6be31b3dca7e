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

package market

import "errors"

const (
	// MonthsPerYear is the number of generated points per simulated year
	MonthsPerYear = 12

	// DefaultInitialPrice is the starting price of every Monte Carlo path
	DefaultInitialPrice = 100.0
)

var (
	ErrInvalidMonths     = errors.New("months must not be negative")
	ErrInvalidPrice      = errors.New("initial price must be greater than zero")
	ErrInvalidVolatility = errors.New("volatility must not be negative")
)

// Point is one month of market data. Return is the simple (not log) return
// realized over the period ending at this point; month 0 always has a
// return of 0.
type Point struct {
	Month  int     `json:"month"`
	Price  float64 `json:"price"`
	Return float64 `json:"return"`
}

// Model describes the annual drift and volatility of the simulated asset.
// Both values are decimals, e.g. 0.08 for 8%.
type Model struct {
	Mean       float64 `json:"mean" toml:"mean"`
	Volatility float64 `json:"volatility" toml:"volatility"`
}

// ModelFromPercent builds a model from annual percentages as entered by a user
// (8 for 8%).
func ModelFromPercent(meanPct, volatilityPct float64) Model {
	return Model{
		Mean:       meanPct / 100,
		Volatility: volatilityPct / 100,
	}
}

// Validate checks that the model can drive a path
func (m Model) Validate() error {
	if m.Volatility < 0 {
		return ErrInvalidVolatility
	}
	return nil
}
