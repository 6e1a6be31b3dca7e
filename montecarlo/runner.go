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
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

// trial is called once per trial index with a source owned by that trial.
// Implementations must only write to state indexed by trial.
type trial func(idx int, src market.UniformSource) error

// runTrials executes fn for every trial in [0, n), splitting the range into
// chunks that are processed by at most opts.Workers goroutines
func runTrials(ctx context.Context, n int, opts Options, fn trial) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for begin := 0; begin < n; begin += chunkSize {
		if gctx.Err() != nil {
			break
		}

		begin := begin
		end := begin + chunkSize
		if end > n {
			end = n
		}

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: trials %d-%d: %v", ErrTrialPanic, begin, end, r)
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}
			for idx := begin; idx < end; idx++ {
				if err := fn(idx, market.NewSource(opts.Seed+int64(idx))); err != nil {
					return err
				}
			}
			log.Trace().Int("Begin", begin).Int("End", end).Msg("chunk complete")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// chunks that were never scheduled leave no error behind
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("simulation cancelled: %w", err)
	}

	return nil
}

// simulateTrial generates one market path and runs the portfolio over it
func simulateTrial(src market.UniformSource, params portfolio.Params, months int, model market.Model) ([]market.Point, []portfolio.Step, error) {
	path, err := model.Path(src, months, market.DefaultInitialPrice)
	if err != nil {
		return nil, nil, err
	}
	return path, portfolio.Simulate(params, path), nil
}

func validateRun(params portfolio.Params, trials, durationYears int, model market.Model) error {
	if trials <= 0 {
		return ErrInvalidIterations
	}
	if durationYears <= 0 {
		return ErrInvalidDuration
	}
	if err := params.Validate(); err != nil {
		return err
	}
	return model.Validate()
}
