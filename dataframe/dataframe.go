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

package dataframe

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// New creates an empty dataframe over index
func New[T Index](index []T) *DataFrame[T] {
	return &DataFrame[T]{
		Index:    index,
		ColNames: []string{},
		Vals:     [][]float64{},
	}
}

// ColIndex returns the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame[T]) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame[T]) ColCount() int {
	return len(df.ColNames)
}

// Column returns the values of the named column or nil if it does not exist
func (df *DataFrame[T]) Column(colName string) []float64 {
	idx := df.ColIndex(colName)
	if idx == -1 {
		return nil
	}
	return df.Vals[idx]
}

// Copy creates a copy of the dataframe
func (df *DataFrame[T]) Copy() *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: make([]string, len(df.ColNames)),
		Index:    make([]T, len(df.Index)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Index, df.Index)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// Frequency keeps every month, every third month or every twelfth month of a
// monthly dataframe. The last row is always kept so the terminal values
// survive resampling.
func (df *DataFrame[T]) Frequency(frequency Frequency) (*DataFrame[T], error) {
	var every int
	switch frequency {
	case Monthly:
		every = 1
	case Quarterly:
		every = 3
	case Annually:
		every = 12
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFrequency, frequency)
	}

	keep := make([]int, 0, df.Len()/every+1)
	for rowIdx := range df.Index {
		if rowIdx%every == 0 || rowIdx == df.Len()-1 {
			keep = append(keep, rowIdx)
		}
	}

	res := &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    make([]T, len(keep)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	for ii, rowIdx := range keep {
		res.Index[ii] = df.Index[rowIdx]
	}

	for colIdx, col := range df.Vals {
		res.Vals[colIdx] = make([]float64, len(keep))
		for ii, rowIdx := range keep {
			res.Vals[colIdx][ii] = col[rowIdx]
		}
	}

	return res, nil
}

// Insert a new column to the end of the dataframe. The column must have one
// value per index entry.
func (df *DataFrame[T]) Insert(name string, col []float64) (*DataFrame[T], error) {
	if len(col) != len(df.Index) {
		log.Debug().Str("Column", name).Int("ColLen", len(col)).Int("IndexLen", len(df.Index)).Msg("refusing to insert column")
		return df, ErrColumnLengthMismatch
	}

	df.ColNames = append(df.ColNames, name)
	df.Vals = append(df.Vals, col)
	return df, nil
}

// Last returns a new dataframe with only the last item of the current dataframe
func (df *DataFrame[T]) Last() *DataFrame[T] {
	if df.Len() == 0 {
		return df
	}

	lastVals := make([][]float64, len(df.ColNames))
	lastRow := len(df.Index) - 1
	for idx, col := range df.Vals {
		lastVals[idx] = []float64{col[lastRow]}
	}

	newDf := &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    []T{df.Index[len(df.Index)-1]},
		Vals:     lastVals,
	}

	return newDf
}

// Len returns the number of rows in the dataframe
func (df *DataFrame[T]) Len() int {
	return len(df.Index)
}

// Max selects the max value for each row and returns a new dataframe
func (df *DataFrame[T]) Max() *DataFrame[T] {
	maxDf := &DataFrame[T]{
		ColNames: []string{"max"},
		Index:    df.Index,
		Vals:     [][]float64{make([]float64, len(df.Index))},
	}

	if len(df.ColNames) == 0 {
		return maxDf
	}

	for rowIdx := range df.Index {
		row := make([]float64, 0, len(df.ColNames))
		for colIdx := range df.ColNames {
			row = append(row, df.Vals[colIdx][rowIdx])
		}
		maxDf.Vals[0][rowIdx] = floats.Max(row)
	}

	return maxDf
}

// Min selects the min value for each row and returns a new dataframe
func (df *DataFrame[T]) Min() *DataFrame[T] {
	minDf := &DataFrame[T]{
		ColNames: []string{"min"},
		Index:    df.Index,
		Vals:     [][]float64{make([]float64, len(df.Index))},
	}

	if len(df.ColNames) == 0 {
		return minDf
	}

	for rowIdx := range df.Index {
		row := make([]float64, 0, len(df.ColNames))
		for colIdx := range df.ColNames {
			row = append(row, df.Vals[colIdx][rowIdx])
		}
		minDf.Vals[0][rowIdx] = floats.Min(row)
	}

	return minDf
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame[T]) MulScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()
	for idx := range df.Vals {
		floats.Scale(scalar, df.Vals[idx])
	}
	return df
}

// Split the dataframe into 2, with columns being in the first dataframe and
// all remaining columns in the second
func (df *DataFrame[T]) Split(columns ...string) (*DataFrame[T], *DataFrame[T]) {
	one := &DataFrame[T]{
		Index:    df.Index,
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	two := &DataFrame[T]{
		Index:    df.Index,
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	// convert requested columns to a map for easy lookup
	colMap := make(map[string]bool, len(columns))
	for _, col := range columns {
		colMap[col] = true
	}

	for idx, col := range df.ColNames {
		if _, ok := colMap[col]; ok {
			one.ColNames = append(one.ColNames, col)
			one.Vals = append(one.Vals, df.Vals[idx])
		} else {
			two.ColNames = append(two.ColNames, col)
			two.Vals = append(two.Vals, df.Vals[idx])
		}
	}

	return one, two
}

// TableWith returns an ASCII formatted table using format to print each value
func (df *DataFrame[T]) TableWith(format func(float64) string) string {
	if len(df.Index) == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the dataframe
	}

	// construct table header
	tableCols := append([]string{"Index"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false) // Set Border to false

	for idx, rowIdx := range df.Index {
		row := make([]string, 0, len(df.Vals)+1)

		switch v := any(rowIdx).(type) {
		case time.Time:
			row = append(row, v.Format("2006-01-02"))
		case int:
			row = append(row, fmt.Sprintf("%d", v))
		case string:
			row = append(row, v)
		}

		for _, col := range df.Vals {
			row = append(row, format(col[idx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}
