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

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-montecarlo/common"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/scenario"
	"github.com/penny-vault/pv-montecarlo/stats"
)

type MonteCarloResponse struct {
	ID        uuid.UUID             `json:"id"`
	Seed      int64                 `json:"seed"`
	Stats     stats.SimulationStats `json:"stats"`
	Histogram []stats.HistogramBin  `json:"histogram"`
}

type PathsResponse struct {
	ID          uuid.UUID          `json:"id"`
	Seed        int64              `json:"seed"`
	Paths       [][]portfolio.Step `json:"paths"`
	MedianIndex int                `json:"medianIndex"`
	Invested    []float64          `json:"invested"`
}

// cached looks up a seeded request. Unseeded requests are random and never
// cached.
func (h *Handler) cached(c *fiber.Ctx, kind string, sc scenario.Scenario, out interface{}) (key string, hit bool) {
	if h.cache == nil || sc.Seed == 0 {
		return "", false
	}

	key, err := common.CacheKey(kind, sc)
	if err != nil {
		log.Warn().Err(err).Msg("could not compute cache key")
		return "", false
	}

	err = h.cache.GetJSON(c.UserContext(), key, out)
	switch {
	case err == nil:
		return key, true
	case !errors.Is(err, common.ErrCacheMiss):
		log.Warn().Err(err).Str("Key", key).Msg("cache read failed")
	}
	return key, false
}

func (h *Handler) store(c *fiber.Ctx, key string, val interface{}) {
	if key == "" {
		return
	}
	if err := h.cache.SetJSON(c.UserContext(), key, val); err != nil {
		log.Warn().Err(err).Str("Key", key).Msg("cache write failed")
	}
}

// MonteCarlo runs the scenario many times and returns the distribution of
// terminal values
func (h *Handler) MonteCarlo(c *fiber.Ctx) error {
	sc, err := parseScenario(c)
	if err != nil {
		return fail(c, err)
	}

	var resp MonteCarloResponse
	key, hit := h.cached(c, "montecarlo", sc, &resp)
	if hit {
		c.Set("X-Cache", "HIT")
		return c.JSON(resp)
	}

	req, err := sc.Request()
	if err != nil {
		return fail(c, err)
	}

	outcome, err := montecarlo.RunMonteCarlo(c.UserContext(), req.Params, req.Iterations, req.DurationYears, req.Model, sc.Options(h.workers)...)
	if err != nil {
		return fail(c, err)
	}

	summary, err := montecarlo.Summarize(outcome)
	if err != nil {
		return fail(c, err)
	}

	histogram, err := stats.ComputeHistogram(outcome.TerminalValues, req.Bins)
	if err != nil {
		return fail(c, err)
	}

	resp = MonteCarloResponse{
		ID:        outcome.ID,
		Seed:      outcome.Seed,
		Stats:     summary,
		Histogram: histogram,
	}
	h.store(c, key, resp)

	return c.JSON(resp)
}

// Paths returns complete sample runs sorted by final value
func (h *Handler) Paths(c *fiber.Ctx) error {
	sc, err := parseScenario(c)
	if err != nil {
		return fail(c, err)
	}

	var resp PathsResponse
	key, hit := h.cached(c, "paths", sc, &resp)
	if hit {
		c.Set("X-Cache", "HIT")
		return c.JSON(resp)
	}

	req, err := sc.Request()
	if err != nil {
		return fail(c, err)
	}

	res, err := montecarlo.SamplePaths(c.UserContext(), req.Params, req.PathCount, req.DurationYears, req.Model, sc.Options(h.workers)...)
	if err != nil {
		return fail(c, err)
	}

	resp = PathsResponse{
		ID:          res.ID,
		Seed:        res.Seed,
		Paths:       res.Paths,
		MedianIndex: res.MedianIndex,
		Invested:    res.Invested(),
	}
	h.store(c, key, resp)

	return c.JSON(resp)
}
