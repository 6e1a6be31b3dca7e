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

package portfolio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Summary is the headline result of a single run
type Summary struct {
	FinalValue    float64 `json:"finalValue"`
	TotalInvested float64 `json:"totalInvested"`
	Profit        float64 `json:"profit"`
	ROIPct        float64 `json:"roiPct"`
}

// DrawDown is a period in which the portfolio falls from a previous peak.
// Months refer to Step.Month; Recovery is -1 if the portfolio never regained
// its peak before the run ended.
type DrawDown struct {
	Begin       int     `json:"begin"`
	End         int     `json:"end"`
	Recovery    int     `json:"recovery"`
	LossPercent float64 `json:"lossPercent"`
}

// Summarize reports the final value, amount invested, profit and return on
// investment of a run. ROIPct is 0 when nothing was invested. ok is false for
// an empty run.
func Summarize(steps []Step) (summary Summary, ok bool) {
	if len(steps) == 0 {
		return Summary{}, false
	}

	final := steps[len(steps)-1]
	summary = Summary{
		FinalValue:    final.TotalValue,
		TotalInvested: final.CumulativeContribution,
		Profit:        final.TotalValue - final.CumulativeContribution,
	}

	if summary.TotalInvested != 0 {
		summary.ROIPct = summary.Profit / summary.TotalInvested * 100
	}

	return summary, true
}

// TotalValues extracts the total value series of a run
func TotalValues(steps []Step) []float64 {
	vals := make([]float64, len(steps))
	for ii, step := range steps {
		vals[ii] = step.TotalValue
	}
	return vals
}

// Contributions extracts the cumulative contribution series of a run
func Contributions(steps []Step) []float64 {
	vals := make([]float64, len(steps))
	for ii, step := range steps {
		vals[ii] = step.CumulativeContribution
	}
	return vals
}

// AllDrawDowns computes every draw down of the run. Contributions are part of
// the total value, so a draw down measures the loss against the best value
// reached so far including new money.
func AllDrawDowns(steps []Step) []*DrawDown {
	allDrawDowns := []*DrawDown{}
	if len(steps) == 0 {
		return allDrawDowns
	}

	peak := steps[0].TotalValue
	prev := steps[0].Month
	var drawDown *DrawDown
	for _, step := range steps {
		value := step.TotalValue
		peak = math.Max(peak, value)
		if value < peak && peak > 0 {
			loss := value/peak - 1.0
			if drawDown == nil {
				drawDown = &DrawDown{
					Begin:       prev,
					End:         step.Month,
					Recovery:    -1,
					LossPercent: loss,
				}
			}

			if loss < drawDown.LossPercent {
				drawDown.End = step.Month
				drawDown.LossPercent = loss
			}
		} else if drawDown != nil {
			drawDown.Recovery = step.Month
			allDrawDowns = append(allDrawDowns, drawDown)
			drawDown = nil
		}
		prev = step.Month
	}

	if drawDown != nil {
		allDrawDowns = append(allDrawDowns, drawDown)
	}

	return allDrawDowns
}

// MaxDrawDown returns the deepest draw down of the run or nil if the value
// never fell below a previous peak
func MaxDrawDown(steps []Step) *DrawDown {
	allDrawDowns := AllDrawDowns(steps)
	if len(allDrawDowns) == 0 {
		return nil
	}

	losses := make([]float64, len(allDrawDowns))
	for ii, dd := range allDrawDowns {
		losses[ii] = dd.LossPercent
	}
	return allDrawDowns[floats.MinIdx(losses)]
}
