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

package chart

import (
	"errors"
	"fmt"
	"strconv"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/penny-vault/pv-montecarlo/format"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/stats"
)

var ErrNothingToDraw = errors.New("no data to draw")

// HistogramPNG renders the distribution of terminal values as a bar chart
func HistogramPNG(bins []stats.HistogramBin, title string) ([]byte, error) {
	if len(bins) == 0 {
		return nil, ErrNothingToDraw
	}

	counts := make([]float64, len(bins))
	labels := make([]string, len(bins))
	for ii, bin := range bins {
		counts[ii] = float64(bin.Count)
		labels[ii] = bin.Label
	}

	p, err := charts.BarRender(
		[][]float64{counts},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render histogram: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate histogram bytes: %w", err)
	}

	return buf, nil
}

// PathsPNG overlays every sampled path with the invested capital line.
// Values are plotted in 억.
func PathsPNG(res *montecarlo.PathSampleResult, title string) ([]byte, error) {
	if res == nil || len(res.Paths) == 0 {
		return nil, ErrNothingToDraw
	}

	values := make([][]float64, 0, len(res.Paths)+1)
	for _, path := range res.Paths {
		values = append(values, inEok(portfolio.TotalValues(path)))
	}
	values = append(values, inEok(res.Invested()))

	months := len(res.Paths[0])
	labels := make([]string, months)
	for ii, step := range res.Paths[0] {
		labels[ii] = strconv.Itoa(step.Month)
	}

	split := months / 10
	if split < 1 {
		split = 1
	}

	median := res.Median()
	subtitle := "median " + format.KRW(median[len(median)-1].TotalValue, 0)

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: split,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render paths: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate path bytes: %w", err)
	}

	return buf, nil
}

func inEok(vals []float64) []float64 {
	res := make([]float64, len(vals))
	for ii, v := range vals {
		res[ii] = v / format.Eok
	}
	return res
}
