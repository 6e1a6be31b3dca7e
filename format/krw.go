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

// Package format renders currency amounts in Korean won using the
// 만 (10^4), 억 (10^8) and 조 (10^12) units.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	Man = 10_000.0
	Eok = 100_000_000.0
	Jo  = 1_000_000_000_000.0
)

// KRW formats value with the largest fitting unit, e.g. 150,000,000 is
// "1억 5,000만". fractionDigits is the maximum number of decimals shown for
// amounts in the 만 range.
func KRW(value float64, fractionDigits int) string {
	switch {
	case value == 0:
		return "0"
	case value < 0:
		return "-" + KRW(-value, fractionDigits)
	case value >= Jo:
		return grouped(value/Jo, 1) + "조"
	case value >= Eok:
		euks := math.Floor(value / Eok)
		mans := math.Round(math.Mod(value, Eok) / Man)
		if mans >= Eok/Man {
			euks++
			mans = 0
		}

		res := fmt.Sprintf("%.0f억", euks)
		if mans > 0 {
			res += " " + grouped(mans, 0) + "만"
		}
		return res
	case value >= Man:
		if roundTo(value/Man, fractionDigits) >= Eok/Man {
			return "1억"
		}
		return grouped(value/Man, fractionDigits) + "만"
	}

	return grouped(value, 3)
}

// CompactKRW formats value for chart axes, e.g. "1.5억" or "5000만"
func CompactKRW(value float64) string {
	switch {
	case value >= Eok:
		return strconv.FormatFloat(value/Eok, 'f', 1, 64) + "억"
	case value >= Man:
		return strconv.FormatFloat(value/Man, 'f', 0, 64) + "만"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// EokRange labels a value range in 억 with one decimal, e.g. "1.2~1.5억"
func EokRange(start, end float64) string {
	return fmt.Sprintf("%.1f~%.1f억", start/Eok, end/Eok)
}

// grouped rounds to at most maxFrac decimals, drops trailing zeros and adds
// thousands separators
func grouped(value float64, maxFrac int) string {
	return humanize.Commaf(roundTo(value, maxFrac))
}

func roundTo(value float64, maxFrac int) float64 {
	if maxFrac < 0 {
		maxFrac = 0
	}
	scale := math.Pow(10, float64(maxFrac))
	return math.Round(value*scale) / scale
}
