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

// PathSampleResult holds complete simulated runs sorted ascending by final
// total value. Paths[MedianIndex] is the median run.
type PathSampleResult struct {
	ID          uuid.UUID          `json:"id"`
	Seed        int64              `json:"seed"`
	Paths       [][]portfolio.Step `json:"paths"`
	MedianIndex int                `json:"medianIndex"`
}

// Median returns the median run
func (r *PathSampleResult) Median() []portfolio.Step {
	return r.Paths[r.MedianIndex]
}

// Invested returns the cumulative contribution of each month. The
// contribution schedule does not depend on the market so every path shares it.
func (r *PathSampleResult) Invested() []float64 {
	if len(r.Paths) == 0 {
		return nil
	}
	return portfolio.Contributions(r.Paths[0])
}

// SamplePaths runs count complete simulations like RunMonteCarlo but keeps
// every step of every run.
func SamplePaths(ctx context.Context, params portfolio.Params, count, durationYears int, model market.Model, opts ...Option) (*PathSampleResult, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "montecarlo.SamplePaths")
	defer span.End()

	if err := validateRun(params, count, durationYears, model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid path sample request")
		return nil, err
	}

	cfg := buildOptions(opts)
	months := durationYears * market.MonthsPerYear

	span.SetAttributes(
		attribute.Int("Count", count),
		attribute.Int("Months", months),
		attribute.Int64("Seed", cfg.Seed),
	)

	log.Debug().Int64("Seed", cfg.Seed).Int("Count", count).Int("Months", months).Msg("sampling paths")

	paths := make([][]portfolio.Step, count)
	err := runTrials(ctx, count, cfg, func(idx int, src market.UniformSource) error {
		_, steps, err := simulateTrial(src, params, months, model)
		if err != nil {
			return err
		}
		paths[idx] = steps
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "path sampling failed")
		return nil, err
	}

	// stable so equal final values keep trial order
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i][len(paths[i])-1].TotalValue < paths[j][len(paths[j])-1].TotalValue
	})

	if median, ok := portfolio.Summarize(paths[count/2]); ok {
		log.Debug().Int64("Seed", cfg.Seed).Object("Median", &median).Msg("paths sampled")
	}

	return &PathSampleResult{
		ID:          uuid.New(),
		Seed:        cfg.Seed,
		Paths:       paths,
		MedianIndex: count / 2,
	}, nil
}
