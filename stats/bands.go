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
	"errors"
	"sort"

	"github.com/penny-vault/pv-montecarlo/dataframe"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

var ErrRaggedPaths = errors.New("all paths must have the same number of months")

// Column names of the data frame returned by Bands
const (
	BandP10      = "p10"
	BandP50      = "p50"
	BandP90      = "p90"
	BandInvested = "invested"
)

// Bands computes, for every month, the 10th, 50th and 90th nearest-rank
// percentile of total value across paths. The invested column is the
// cumulative contribution, which is identical for every path.
func Bands(paths [][]portfolio.Step) (*dataframe.DataFrame[int], error) {
	if len(paths) == 0 || len(paths[0]) == 0 {
		return nil, ErrEmptyInput
	}

	months := len(paths[0])
	for _, path := range paths {
		if len(path) != months {
			return nil, ErrRaggedPaths
		}
	}

	index := make([]int, months)
	p10 := make([]float64, months)
	p50 := make([]float64, months)
	p90 := make([]float64, months)
	invested := make([]float64, months)

	column := make([]float64, len(paths))
	for mm := 0; mm < months; mm++ {
		for ii, path := range paths {
			column[ii] = path[mm].TotalValue
		}
		sort.Float64s(column)

		index[mm] = paths[0][mm].Month
		p10[mm] = NearestRank(column, 0.10)
		p50[mm] = NearestRank(column, 0.50)
		p90[mm] = NearestRank(column, 0.90)
		invested[mm] = paths[0][mm].CumulativeContribution
	}

	df := dataframe.New(index)
	for _, col := range []struct {
		name string
		vals []float64
	}{
		{BandP10, p10},
		{BandP50, p50},
		{BandP90, p90},
		{BandInvested, invested},
	} {
		var err error
		if df, err = df.Insert(col.name, col.vals); err != nil {
			return nil, err
		}
	}

	return df, nil
}
