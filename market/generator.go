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

import (
	"math"
)

// GeneratePath produces a monthly Geometric Brownian Motion price sequence.
// The returned slice has months+1 points: month 0 carries initialPrice and a
// zero return, every following month applies one log-normal shock
//
//	logReturn = (mean - volatility^2/2)*dt + volatility*sqrt(dt)*z
//
// with dt = 1/12 and z a standard normal variate drawn from src.
func GeneratePath(src UniformSource, months int, annualMeanReturn, annualVolatility, initialPrice float64) ([]Point, error) {
	if months < 0 {
		return nil, ErrInvalidMonths
	}
	if initialPrice <= 0 || math.IsNaN(initialPrice) {
		return nil, ErrInvalidPrice
	}
	if annualVolatility < 0 {
		return nil, ErrInvalidVolatility
	}

	dt := 1.0 / MonthsPerYear
	drift := (annualMeanReturn - 0.5*annualVolatility*annualVolatility) * dt
	sigma := annualVolatility * math.Sqrt(dt)

	path := make([]Point, 0, months+1)
	path = append(path, Point{
		Month:  0,
		Price:  initialPrice,
		Return: 0,
	})

	price := initialPrice
	for ii := 1; ii <= months; ii++ {
		logReturn := drift + sigma*StandardNormal(src)
		next := price * math.Exp(logReturn)
		path = append(path, Point{
			Month:  ii,
			Price:  next,
			Return: (next - price) / price,
		})
		price = next
	}

	return path, nil
}

// Path generates a path for the model
func (m Model) Path(src UniformSource, months int, initialPrice float64) ([]Point, error) {
	return GeneratePath(src, months, m.Mean, m.Volatility, initialPrice)
}

// MockSP500 approximates a broad US equity index: 10% annual drift, 15%
// volatility, starting at a price of 100.
func MockSP500(src UniformSource, months int) ([]Point, error) {
	return GeneratePath(src, months, 0.10, 0.15, DefaultInitialPrice)
}

// StandardNormal draws a N(0,1) variate with the Box-Muller transform. Draws
// of exactly zero are rejected so that ln(u) stays finite.
func StandardNormal(src UniformSource) float64 {
	u := 0.0
	for u == 0 {
		u = src.Float64()
	}
	v := 0.0
	for v == 0 {
		v = src.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}
