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

// Package montecarlo repeats portfolio simulations over independently
// generated market paths and aggregates the outcomes.
package montecarlo

import (
	"errors"
	"runtime"

	"github.com/penny-vault/pv-montecarlo/market"
)

const (
	DefaultIterations = 10_000
	DefaultPathCount  = 50

	// trials handed to a worker at a time; cancellation is checked between chunks
	chunkSize = 250
)

var (
	ErrInvalidIterations = errors.New("iterations must be greater than zero")
	ErrInvalidDuration   = errors.New("duration must be at least one year")
	ErrTrialPanic        = errors.New("trial panicked")
)

// Options control how trials are executed. They never change what a trial
// computes: for a fixed seed the results are identical for any worker count.
type Options struct {
	// Seed of trial 0; trial i uses Seed+i. Zero picks a seed from the clock.
	Seed int64

	// Workers is the number of goroutines running trials. Values below one
	// use GOMAXPROCS.
	Workers int
}

// Option modifies Options
type Option func(*Options)

// WithSeed fixes the seed so that a run can be reproduced
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithWorkers limits the number of goroutines used for a run
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

func buildOptions(opts []Option) Options {
	res := Options{}
	for _, opt := range opts {
		opt(&res)
	}

	if res.Seed == 0 {
		res.Seed = market.ClockSeed()
	}

	if res.Workers < 1 {
		res.Workers = runtime.GOMAXPROCS(0)
	}

	return res
}
