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

// Package handler implements the HTTP API on top of the simulation engine
package handler

import (
	"fmt"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-montecarlo/common"
	"github.com/penny-vault/pv-montecarlo/scenario"
)

// Handler serves simulation requests. Results of seeded Monte Carlo requests
// are cached when a cache is given.
type Handler struct {
	cache   *common.ResultCache
	workers int
}

// New creates a handler. cache may be nil; workers < 1 uses every CPU.
func New(cache *common.ResultCache, workers int) *Handler {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Handler{
		cache:   cache,
		workers: workers,
	}
}

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Time    string `json:"time" example:"2026-06-19T08:09:10.115924+09:00"`
}

type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message"`
}

func (h *Handler) Ping(c *fiber.Ctx) error {
	return c.JSON(PingResponse{
		Status:  "success",
		Message: "API is alive",
		Time:    time.Now().Format(time.RFC3339Nano),
	})
}

// parseScenario decodes the request body over the default scenario so that
// clients only send what they change
func parseScenario(c *fiber.Ctx) (scenario.Scenario, error) {
	sc := scenario.Default()
	body := c.Body()
	if len(body) == 0 {
		return sc, nil
	}

	if err := json.Unmarshal(body, &sc); err != nil {
		return sc, fmt.Errorf("%w: %v", scenario.ErrInvalidScenario, err)
	}
	return sc, nil
}

// fail maps err to a JSON error response
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if scenario.IsValidationError(err) {
		status = fiber.StatusBadRequest
	} else {
		log.Error().Err(err).Str("Path", c.Path()).Msg("simulation request failed")
	}

	return c.Status(status).JSON(ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
