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

package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pv-montecarlo/chart"
	"github.com/penny-vault/pv-montecarlo/dataframe"
	"github.com/penny-vault/pv-montecarlo/format"
	"github.com/penny-vault/pv-montecarlo/market"
	"github.com/penny-vault/pv-montecarlo/portfolio"
)

var projectJSON bool

func init() {
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "print every month as JSON")
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Simulate the portfolio over a single market path",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}

		if sc.Seed == 0 {
			sc.Seed = market.ClockSeed()
		}

		steps, err := sc.Project(market.NewSource(sc.Seed))
		if err != nil {
			return err
		}

		if projectJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(steps)
		}

		summary, _ := portfolio.Summarize(steps)
		params, _ := sc.Params()
		log.Debug().Int64("Seed", sc.Seed).Object("Summary", &summary).Object("Final", &steps[len(steps)-1]).Msg("projection complete")

		fmt.Printf("Strategy:       %s\n", params.Strategy)
		fmt.Printf("Seed:           %d\n\n", sc.Seed)
		fmt.Printf("Final Value:    %s\n", format.KRW(summary.FinalValue, 0))
		fmt.Printf("Total Invested: %s\n", format.KRW(summary.TotalInvested, 0))
		fmt.Printf("Profit:         %s\n", format.KRW(summary.Profit, 0))
		fmt.Printf("ROI:            %.2f%%\n", summary.ROIPct)
		if dd := portfolio.MaxDrawDown(steps); dd != nil {
			fmt.Printf("Max Drawdown:   %.2f%% (month %d to %d)\n", dd.LossPercent*100, dd.Begin, dd.End)
		}
		fmt.Println()

		fmt.Println(chart.Projection(steps, chart.Size{}))
		fmt.Println()

		df, err := stepsFrame(steps).Frequency(dataframe.Annually)
		if err != nil {
			return err
		}
		fmt.Println(df.TableWith(format.CompactKRW))

		return nil
	},
}

// stepsFrame indexes the value columns of a run by month
func stepsFrame(steps []portfolio.Step) *dataframe.DataFrame[int] {
	index := make([]int, len(steps))
	cash := make([]float64, len(steps))
	asset := make([]float64, len(steps))
	for ii, step := range steps {
		index[ii] = step.Month
		cash[ii] = step.CashValue
		asset[ii] = step.AssetValue
	}

	df := dataframe.New(index)
	// every column has one value per step so Insert cannot fail
	df, _ = df.Insert("total", portfolio.TotalValues(steps))
	df, _ = df.Insert("invested", portfolio.Contributions(steps))
	df, _ = df.Insert("cash", cash)
	df, _ = df.Insert("asset", asset)
	return df
}
