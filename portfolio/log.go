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
	"github.com/rs/zerolog"
)

func (o *Step) MarshalZerologObject(e *zerolog.Event) {
	e.Int("Month", o.Month).
		Float64("TotalValue", o.TotalValue).
		Float64("CashValue", o.CashValue).
		Float64("AssetValue", o.AssetValue).
		Float64("AssetPrice", o.AssetPrice).
		Float64("CumulativeContribution", o.CumulativeContribution).
		Float64("TargetRatio", o.TargetRatio)
}

func (o *Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("FinalValue", o.FinalValue).Float64("TotalInvested", o.TotalInvested).Float64("Profit", o.Profit).Float64("ROIPct", o.ROIPct)
}

func (o *DrawDown) MarshalZerologObject(e *zerolog.Event) {
	e.Int("Begin", o.Begin).Int("End", o.End).Int("Recovery", o.Recovery).Float64("LossPercent", o.LossPercent)
}
