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

// Package chart draws simulation results, either as text for a terminal or
// as PNG images.
package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/penny-vault/pv-montecarlo/dataframe"
	"github.com/penny-vault/pv-montecarlo/format"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/stats"
)

const (
	DefaultWidth  = 72
	DefaultHeight = 16
)

// Size of a terminal chart in characters
type Size struct {
	Width  int
	Height int
}

func (s Size) options(caption string) []asciigraph.Option {
	width := s.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := s.Height
	if height <= 0 {
		height = DefaultHeight
	}
	return []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	}
}

// Projection plots total value against invested capital for a single run.
// Amounts are shown in 만원.
func Projection(steps []portfolio.Step, size Size) string {
	if len(steps) == 0 {
		return ""
	}

	total := inMan(portfolio.TotalValues(steps))
	invested := inMan(portfolio.Contributions(steps))
	return asciigraph.PlotMany([][]float64{total, invested}, size.options("total value vs invested (만원)")...)
}

// Bands plots the P10, P50 and P90 series produced by stats.Bands together
// with invested capital. Other columns of df are ignored. The caption shows
// the range covered by the plotted series.
func Bands(df *dataframe.DataFrame[int], size Size) string {
	if df == nil || df.Len() == 0 {
		return ""
	}

	bands, _ := df.Split(stats.BandP10, stats.BandP50, stats.BandP90, stats.BandInvested)
	if bands.ColCount() == 0 {
		return ""
	}

	lo := floats.Min(bands.Min().Vals[0])
	hi := floats.Max(bands.Max().Vals[0])
	caption := fmt.Sprintf("P10 / P50 / P90 / invested (만원), range %s to %s", format.CompactKRW(lo), format.CompactKRW(hi))

	return asciigraph.PlotMany(bands.MulScalar(1/format.Man).Vals, size.options(caption)...)
}

func inMan(vals []float64) []float64 {
	res := make([]float64, len(vals))
	for ii, v := range vals {
		res[ii] = v / format.Man
	}
	return res
}
