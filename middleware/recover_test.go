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


package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-montecarlo/middleware"
)

var _ = Describe("Recover", func() {
	var app *fiber.App

	BeforeEach(func() {
		app = fiber.New()
		api := app.Group("/v1", middleware.NewLogger(), middleware.NewRecover())
		api.Get("/panic", func(c *fiber.Ctx) error {
			panic("handler exploded")
		})
		api.Get("/ok", func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
	})

	It("answers 500 instead of crashing", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/panic", nil), -1)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("keeps serving after a panic", func() {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/panic", nil), -1)
		Expect(err).To(BeNil())

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/ok", nil), -1)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})
})
