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

// Package stats reduces collections of simulated terminal values into
// percentiles, histograms and per-month percentile bands.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyInput      = errors.New("cannot reduce an empty collection")
	ErrInvalidBinCount = errors.New("bin count must be greater than zero")
)

// SimulationStats summarizes the distribution of terminal values. The
// benchmark fields are only set when the values came from a Monte Carlo run.
type SimulationStats struct {
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`

	BenchmarkBeatRate        *float64 `json:"benchmarkBeatRate,omitempty"`
	MedianBenchmarkReturnPct *float64 `json:"medianBenchmarkReturnPct,omitempty"`
}

// ComputePercentiles sorts a copy of values and reports the 10th, 50th and
// 90th nearest-rank percentiles along with the extremes. Percentiles are
// always elements of the input, never interpolated.
func ComputePercentiles(values []float64) (SimulationStats, error) {
	if len(values) == 0 {
		return SimulationStats{}, ErrEmptyInput
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, stdDev := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		stdDev = 0
	}

	return SimulationStats{
		P10:    NearestRank(sorted, 0.10),
		P50:    NearestRank(sorted, 0.50),
		P90:    NearestRank(sorted, 0.90),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		StdDev: stdDev,
	}, nil
}

// NearestRank returns sorted[floor(p*n)], clamped to the last element. sorted
// must be in ascending order and non-empty.
func NearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(p * float64(len(sorted))))
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// Median returns the element at index floor(n/2) of the sorted values. Like
// the percentiles it is always an element of the input.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2], nil
}
