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

package stats

import (
	"math"

	"github.com/penny-vault/pv-montecarlo/format"
)

// DefaultBinCount is the number of histogram bins used when none is requested
const DefaultBinCount = 25

// HistogramBin counts the values falling in [RangeStart, RangeEnd). The last
// bin of a histogram also contains values equal to its RangeEnd.
type HistogramBin struct {
	RangeStart float64 `json:"rangeStart"`
	RangeEnd   float64 `json:"rangeEnd"`
	Count      int     `json:"count"`
	Label      string  `json:"label"`
}

// LabelFunc produces the human readable label of a bin
type LabelFunc func(start, end float64) string

// HistogramOption customizes ComputeHistogram
type HistogramOption func(*histogramConfig)

type histogramConfig struct {
	label LabelFunc
}

// WithLabel replaces the default label format ("1.2~1.5억")
func WithLabel(label LabelFunc) HistogramOption {
	return func(cfg *histogramConfig) {
		cfg.label = label
	}
}

// ComputeHistogram partitions [min, max] of values into binCount equal-width
// bins and counts the values in each. Every value falls in exactly one bin;
// the maximum lands in the last bin.
//
// When all values are identical the range is zero: binCount zero-width bins
// are returned and every value is counted in the first one.
func ComputeHistogram(values []float64, binCount int, opts ...HistogramOption) ([]HistogramBin, error) {
	if binCount <= 0 {
		return nil, ErrInvalidBinCount
	}

	cfg := histogramConfig{label: format.EokRange}
	for _, opt := range opts {
		opt(&cfg)
	}

	summary, err := ComputePercentiles(values)
	if err != nil {
		return nil, err
	}

	minVal := summary.Min
	maxVal := summary.Max
	step := (maxVal - minVal) / float64(binCount)

	bins := make([]HistogramBin, binCount)
	for ii := range bins {
		start := minVal + float64(ii)*step
		end := start + step
		if ii == binCount-1 {
			end = maxVal
		}
		bins[ii] = HistogramBin{
			RangeStart: start,
			RangeEnd:   end,
			Label:      cfg.label(start, end),
		}
	}

	for _, v := range values {
		bins[binIndex(v, minVal, step, binCount)].Count++
	}

	return bins, nil
}

func binIndex(v, minVal, step float64, binCount int) int {
	if step == 0 {
		return 0
	}

	idx := int(math.Floor((v - minVal) / step))
	if idx >= binCount {
		idx = binCount - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
