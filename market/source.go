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
	"math/rand"
	"time"
)

// UniformSource supplies uniformly distributed draws in [0, 1). A *rand.Rand
// satisfies it. Sources are not safe for concurrent use; every goroutine must
// own its own source.
type UniformSource interface {
	Float64() float64
}

// NewSource returns a pseudo-random source seeded with seed. The same seed
// always yields the same sequence of draws.
func NewSource(seed int64) UniformSource {
	return rand.New(rand.NewSource(seed)) //nolint:gosec
}

// ClockSeed returns a seed derived from the wall clock
func ClockSeed() int64 {
	return time.Now().UnixNano()
}

// SequenceSource replays a fixed list of draws, wrapping around when the list
// is exhausted. It is intended for tests that pin exact expected values.
type SequenceSource struct {
	values []float64
	pos    int
}

// NewSequenceSource creates a source that returns values in order
func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &SequenceSource{values: values}
}

// Float64 returns the next value in the sequence
func (s *SequenceSource) Float64() float64 {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}
