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

import "errors"

var (
	ErrNegativeCapital      = errors.New("initial capital must not be negative")
	ErrNegativeContribution = errors.New("monthly contribution must not be negative")
	ErrInvalidCashPct       = errors.New("cash percentage must be between 0 and 100")
	ErrInvalidLeverage      = errors.New("leverage ratio must not be negative")
	ErrUnknownStrategy      = errors.New("unknown rebalancing strategy")
	ErrMissingStrategy      = errors.New("no rebalancing strategy configured")
)
