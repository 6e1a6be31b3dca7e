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

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/penny-vault/pv-montecarlo/observability/opentelemetry"
)

// NewLogger creates a middleware that traces each request and logs it once
// it has been handled
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), c.Method()+" "+c.Path())
		defer span.End()
		span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)
		c.SetUserContext(ctx)

		// run the error handler now so the logged status is the one sent
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("StatusCode", code))

		var event *zerolog.Event
		var msg string
		switch {
		case code < fiber.StatusMultipleChoices:
			event, msg = log.Info(), "processed HTTP request"
		case code < fiber.StatusBadRequest:
			event, msg = log.Info(), "forward HTTP request"
		case code < fiber.StatusInternalServerError:
			event, msg = log.Warn(), "bad HTTP request"
		default:
			event, msg = log.Error(), "internal server error"
		}

		event.
			Int("StatusCode", code).
			Dur("Latency", time.Since(start).Round(time.Millisecond)).
			Str("IP", c.IP()).
			Str("Method", c.Method()).
			Str("Path", c.Path()).
			Str("Route", c.Route().Path).
			Str("UserAgent", c.Get(fiber.HeaderUserAgent)).
			Int("NumBytesReceived", len(c.Request().Body())).
			Int("NumBytesSent", len(c.Response().Body())).
			Msg(msg)

		return nil
	}
}
