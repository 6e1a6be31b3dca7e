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

package format_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-montecarlo/format"
)

var _ = Describe("KRW", func() {
	DescribeTable("formats amounts with Korean units",
		func(value float64, digits int, expected string) {
			Expect(format.KRW(value, digits)).To(Equal(expected))
		},
		Entry("zero", 0.0, 0, "0"),
		Entry("small amounts", 5_000.0, 0, "5,000"),
		Entry("man", 10_000_000.0, 0, "1,000만"),
		Entry("man with decimals", 15_000.0, 1, "1.5만"),
		Entry("whole eok", 100_000_000.0, 0, "1억"),
		Entry("eok and man", 150_000_000.0, 0, "1억 5,000만"),
		Entry("rounds man", 123_456_789.0, 0, "1억 2,346만"),
		Entry("jo", 1_500_000_000_000.0, 0, "1.5조"),
		Entry("carries into the next eok", 199_999_999.0, 0, "2억"),
		Entry("carries man into eok", 99_999_999.0, 0, "1억"),
		Entry("losses", -25_000_000.0, 0, "-2,500만"),
	)

	DescribeTable("formats compact axis labels",
		func(value float64, expected string) {
			Expect(format.CompactKRW(value)).To(Equal(expected))
		},
		Entry("eok", 150_000_000.0, "1.5억"),
		Entry("man", 50_000_000.0, "5000만"),
		Entry("small", 1_234.0, "1234"),
	)

	It("labels ranges in eok", func() {
		Expect(format.EokRange(120_000_000, 150_000_000)).To(Equal("1.2~1.5억"))
	})
})
