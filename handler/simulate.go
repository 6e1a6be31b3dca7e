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
	"github.com/gofiber/fiber/v2"

	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

type SimulateResponse struct {
	Seed        int64               `json:"seed"`
	Steps       []portfolio.Step    `json:"steps"`
	Summary     portfolio.Summary   `json:"summary"`
	MaxDrawDown *portfolio.DrawDown `json:"maxDrawDown,omitempty"`
}

// Simulate projects the scenario over a single generated market path
func (h *Handler) Simulate(c *fiber.Ctx) error {
	sc, err := parseScenario(c)
	if err != nil {
		return fail(c, err)
	}

	if sc.Seed == 0 {
		sc.Seed = market.ClockSeed()
	}

	steps, err := sc.Project(market.NewSource(sc.Seed))
	if err != nil {
		return fail(c, err)
	}

	summary, _ := portfolio.Summarize(steps)
	return c.JSON(SimulateResponse{
		Seed:        sc.Seed,
		Steps:       steps,
		Summary:     summary,
		MaxDrawDown: portfolio.MaxDrawDown(steps),
	})
}
