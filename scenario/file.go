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


package scenario

import (
	"fmt"

	"github.com/penny-vault/pv-montecarlo/portfolio"
)

// number receives a TOML value that may be written as an integer or a float
type number = interface{}

type fileStrategy struct {
	Kind       *portfolio.StrategyKind `toml:"kind"`
	StartRatio number                  `toml:"start_ratio"`
	EndRatio   number                  `toml:"end_ratio"`
	BorrowCost number                  `toml:"borrow_cost"`
}

type fileMarket struct {
	ExpectedReturn number `toml:"expected_return"`
	Volatility     number `toml:"volatility"`
}

// fileScenario is the TOML layout of a Scenario. Every key is optional; amounts
// and percentages accept integers as well as floats.
type fileScenario struct {
	InitialCapital      number        `toml:"initial_capital"`
	MonthlyContribution number        `toml:"monthly_contribution"`
	DurationYears       *int          `toml:"duration_years"`
	Strategy            *fileStrategy `toml:"strategy"`
	Market              *fileMarket   `toml:"market"`

	Iterations *int   `toml:"iterations"`
	Bins       *int   `toml:"bins"`
	PathCount  *int   `toml:"count"`
	Seed       *int64 `toml:"seed"`
}

type floatField struct {
	key    string
	value  number
	target *float64
}

// apply copies every key present in the file onto sc
func (f *fileScenario) apply(sc *Scenario) error {
	fields := []floatField{
		{"initial_capital", f.InitialCapital, &sc.InitialCapital},
		{"monthly_contribution", f.MonthlyContribution, &sc.MonthlyContribution},
	}
	if f.Strategy != nil {
		if f.Strategy.Kind != nil {
			sc.Strategy.Kind = *f.Strategy.Kind
		}
		fields = append(fields,
			floatField{"strategy.start_ratio", f.Strategy.StartRatio, &sc.Strategy.StartRatio},
			floatField{"strategy.end_ratio", f.Strategy.EndRatio, &sc.Strategy.EndRatio},
			floatField{"strategy.borrow_cost", f.Strategy.BorrowCost, &sc.Strategy.BorrowCost},
		)
	}
	if f.Market != nil {
		fields = append(fields,
			floatField{"market.expected_return", f.Market.ExpectedReturn, &sc.Market.ExpectedReturn},
			floatField{"market.volatility", f.Market.Volatility, &sc.Market.Volatility},
		)
	}

	for _, field := range fields {
		if err := setFloat(field.target, field.value, field.key); err != nil {
			return err
		}
	}

	setInt(&sc.DurationYears, f.DurationYears)
	setInt(&sc.Iterations, f.Iterations)
	setInt(&sc.Bins, f.Bins)
	setInt(&sc.PathCount, f.PathCount)
	if f.Seed != nil {
		sc.Seed = *f.Seed
	}

	return nil
}

func setFloat(target *float64, value number, key string) error {
	switch v := value.(type) {
	case nil:
	case int64:
		*target = float64(v)
	case float64:
		*target = v
	default:
		return fmt.Errorf("%s must be a number, got %T", key, value)
	}
	return nil
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}
