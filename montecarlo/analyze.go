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
	"context"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/stats"
)

// Request describes a complete analysis. Zero counts are replaced with
// DefaultIterations, stats.DefaultBinCount and DefaultPathCount.
type Request struct {
	Params        portfolio.Params
	DurationYears int
	Model         market.Model
	Iterations    int
	Bins          int
	PathCount     int
}

// Analysis combines the distribution of terminal values with a sample of
// complete paths drawn from the same seed
type Analysis struct {
	Outcome   *Outcome              `json:"outcome"`
	Stats     stats.SimulationStats `json:"stats"`
	Histogram []stats.HistogramBin  `json:"histogram"`
	Paths     *PathSampleResult     `json:"paths"`
}

func (req *Request) applyDefaults() {
	if req.Iterations == 0 {
		req.Iterations = DefaultIterations
	}
	if req.Bins == 0 {
		req.Bins = stats.DefaultBinCount
	}
	if req.PathCount == 0 {
		req.PathCount = DefaultPathCount
	}
}

// Analyze runs the Monte Carlo driver, reduces its terminal values to
// percentiles and a histogram, and samples paths for display
func Analyze(ctx context.Context, req Request, opts ...Option) (*Analysis, error) {
	req.applyDefaults()

	// resolve the clock seed once so both runs share it
	cfg := buildOptions(opts)
	shared := []Option{WithSeed(cfg.Seed), WithWorkers(cfg.Workers)}

	outcome, err := RunMonteCarlo(ctx, req.Params, req.Iterations, req.DurationYears, req.Model, shared...)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(outcome)
	if err != nil {
		return nil, err
	}

	histogram, err := stats.ComputeHistogram(outcome.TerminalValues, req.Bins)
	if err != nil {
		return nil, err
	}

	paths, err := SamplePaths(ctx, req.Params, req.PathCount, req.DurationYears, req.Model, shared...)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Outcome:   outcome,
		Stats:     summary,
		Histogram: histogram,
		Paths:     paths,
	}, nil
}

// Summarize computes the percentiles of an outcome's terminal values and
// attaches its benchmark comparison
func Summarize(outcome *Outcome) (stats.SimulationStats, error) {
	summary, err := stats.ComputePercentiles(outcome.TerminalValues)
	if err != nil {
		return summary, err
	}

	beatRate := outcome.BenchmarkBeatRate
	medianReturn := outcome.MedianBenchmarkReturnPct
	summary.BenchmarkBeatRate = &beatRate
	summary.MedianBenchmarkReturnPct = &medianReturn

	return summary, nil
}
