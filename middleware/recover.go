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
	"runtime"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// NewRecover turns a panic in a handler into a 500 response and logs the
// stack of the goroutine that panicked
func NewRecover() fiber.Handler {
	return fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			stackSlice := make([]byte, 4096)
			n := runtime.Stack(stackSlice, false)
			log.Error().
				Interface("Error", e).
				Str("Path", c.Path()).
				Str("StackTrace", string(stackSlice[:n])).
				Msg("caught panic in request handler")
		},
	})
}
