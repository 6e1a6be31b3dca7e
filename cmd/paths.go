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
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-montecarlo/chart"
	"github.com/penny-vault/pv-montecarlo/dataframe"
	"github.com/penny-vault/pv-montecarlo/format"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/stats"
)

var (
	pathsCount int
	pathsPNG   string
)

func init() {
	pathsCmd.Flags().IntVarP(&pathsCount, "count", "c", montecarlo.DefaultPathCount, "number of complete paths to sample")
	pathsCmd.Flags().StringVar(&pathsPNG, "png", "", "write the sampled paths to this PNG file")

	rootCmd.AddCommand(pathsCmd)
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Sample complete paths and show percentile bands over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("count") || sc.PathCount == 0 {
			sc.PathCount = pathsCount
		}

		req, err := sc.Request()
		if err != nil {
			return err
		}

		res, err := montecarlo.SamplePaths(context.Background(), req.Params, req.PathCount, req.DurationYears, req.Model, sc.Options(viper.GetInt("workers"))...)
		if err != nil {
			return err
		}

		if pathsPNG != "" {
			if err := writePNG(pathsPNG, func() ([]byte, error) {
				return chart.PathsPNG(res, fmt.Sprintf("%d sample paths", len(res.Paths)))
			}); err != nil {
				return err
			}
		}

		bands, err := stats.Bands(res.Paths)
		if err != nil {
			return err
		}

		fmt.Printf("Seed: %d\n\n", res.Seed)
		fmt.Println(chart.Bands(bands, chart.Size{}))
		fmt.Println()

		yearly, err := bands.Frequency(dataframe.Annually)
		if err != nil {
			return err
		}
		fmt.Println(yearly.TableWith(format.CompactKRW))

		fmt.Println("Final month")
		fmt.Println(bands.Last().TableWith(format.CompactKRW))

		median := res.Median()
		summary, _ := portfolio.Summarize(median)
		fmt.Printf("Median path: %s final value, %.2f%% ROI\n", format.KRW(summary.FinalValue, 0), summary.ROIPct)
		if dd := portfolio.MaxDrawDown(median); dd != nil {
			fmt.Printf("Median path max drawdown: %.2f%% (month %d to %d)\n", dd.LossPercent*100, dd.Begin, dd.End)
		}

		return nil
	},
}
