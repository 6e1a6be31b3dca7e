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
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/observability/opentelemetry"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

// Outcome of a Monte Carlo run. TerminalValues is ordered by trial, not by
// value.
type Outcome struct {
	ID                       uuid.UUID `json:"id"`
	Seed                     int64     `json:"seed"`
	TerminalValues           []float64 `json:"terminalValues"`
	BenchmarkBeatRate        float64   `json:"benchmarkBeatRate"`
	MedianBenchmarkReturnPct float64   `json:"medianBenchmarkReturnPct"`
}

// RunMonteCarlo simulates params over iterations independent market paths of
// durationYears and records each run's terminal value. Each trial is compared
// against the fully invested, never rebalanced benchmark on the same path.
func RunMonteCarlo(ctx context.Context, params portfolio.Params, iterations, durationYears int, model market.Model, opts ...Option) (*Outcome, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "montecarlo.RunMonteCarlo")
	defer span.End()

	if err := validateRun(params, iterations, durationYears, model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid monte carlo request")
		return nil, err
	}

	cfg := buildOptions(opts)
	months := durationYears * market.MonthsPerYear

	span.SetAttributes(
		attribute.Int("Iterations", iterations),
		attribute.Int("Months", months),
		attribute.Int64("Seed", cfg.Seed),
		attribute.String("Strategy", params.Strategy.String()),
	)

	subLog := log.With().Int64("Seed", cfg.Seed).Logger()
	subLog.Debug().Int("Iterations", iterations).Int("Months", months).Int("Workers", cfg.Workers).Msg("starting monte carlo run")

	outcome := &Outcome{
		ID:             uuid.New(),
		Seed:           cfg.Seed,
		TerminalValues: make([]float64, iterations),
	}
	benchReturns := make([]float64, iterations)
	beat := make([]bool, iterations)

	err := runTrials(ctx, iterations, cfg, func(idx int, src market.UniformSource) error {
		path, steps, err := simulateTrial(src, params, months, model)
		if err != nil {
			return err
		}

		bench := RunBenchmark(params, path)
		outcome.TerminalValues[idx] = steps[len(steps)-1].TotalValue
		benchReturns[idx] = bench.ReturnPct()
		beat[idx] = beats(steps, bench)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "monte carlo run failed")
		return nil, err
	}

	beatCount := 0
	for _, b := range beat {
		if b {
			beatCount++
		}
	}

	sort.Float64s(benchReturns)
	outcome.BenchmarkBeatRate = float64(beatCount) / float64(iterations) * 100
	outcome.MedianBenchmarkReturnPct = benchReturns[len(benchReturns)/2]

	subLog.Debug().Str("ID", outcome.ID.String()).Float64("BeatRate", outcome.BenchmarkBeatRate).Msg("monte carlo run complete")

	return outcome, nil
}
