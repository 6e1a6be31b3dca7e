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
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-montecarlo/chart"
	"github.com/penny-vault/pv-montecarlo/format"
	"github.com/penny-vault/pv-montecarlo/montecarlo"
	"github.com/penny-vault/pv-montecarlo/stats"
)

var (
	mcIterations int
	mcBins       int
	mcCount      int
	mcPNG        string
	mcPathsPNG   string
	mcJSON       bool
)

func init() {
	montecarloCmd.Flags().IntVarP(&mcIterations, "iterations", "n", montecarlo.DefaultIterations, "number of simulated paths")
	montecarloCmd.Flags().IntVar(&mcBins, "bins", stats.DefaultBinCount, "number of histogram bins")
	montecarloCmd.Flags().IntVar(&mcCount, "count", montecarlo.DefaultPathCount, "number of complete paths to sample")
	montecarloCmd.Flags().StringVar(&mcPNG, "png", "", "write the histogram of terminal values to this PNG file")
	montecarloCmd.Flags().StringVar(&mcPathsPNG, "paths-png", "", "write the sampled paths to this PNG file")
	montecarloCmd.Flags().BoolVar(&mcJSON, "json", false, "print statistics and histogram as JSON")

	rootCmd.AddCommand(montecarloCmd)
}

type monteCarloReport struct {
	Seed      int64                 `json:"seed"`
	Stats     stats.SimulationStats `json:"stats"`
	Histogram []stats.HistogramBin  `json:"histogram"`
}

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Estimate the distribution of terminal values",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("iterations") || sc.Iterations == 0 {
			sc.Iterations = mcIterations
		}
		if flags.Changed("bins") || sc.Bins == 0 {
			sc.Bins = mcBins
		}
		if flags.Changed("count") || sc.PathCount == 0 {
			sc.PathCount = mcCount
		}

		req, err := sc.Request()
		if err != nil {
			return err
		}

		log.Info().Int("Iterations", req.Iterations).Int("Years", req.DurationYears).Msg("running monte carlo simulation")

		analysis, err := montecarlo.Analyze(context.Background(), req, sc.Options(viper.GetInt("workers"))...)
		if err != nil {
			return err
		}

		if mcPNG != "" {
			if err := writePNG(mcPNG, func() ([]byte, error) {
				return chart.HistogramPNG(analysis.Histogram, fmt.Sprintf("%d years, %d paths", req.DurationYears, req.Iterations))
			}); err != nil {
				return err
			}
		}

		if mcPathsPNG != "" {
			if err := writePNG(mcPathsPNG, func() ([]byte, error) {
				return chart.PathsPNG(analysis.Paths, fmt.Sprintf("%d sample paths", len(analysis.Paths.Paths)))
			}); err != nil {
				return err
			}
		}

		if mcJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(monteCarloReport{
				Seed:      analysis.Outcome.Seed,
				Stats:     analysis.Stats,
				Histogram: analysis.Histogram,
			})
		}

		fmt.Printf("Seed: %d\n\n", analysis.Outcome.Seed)
		fmt.Println(statsTable(analysis.Stats))
		fmt.Println(histogramTable(analysis.Histogram))

		median := analysis.Paths.Median()
		fmt.Printf("Median sample path ends at %s\n", format.KRW(median[len(median)-1].TotalValue, 0))

		return nil
	},
}

func statsTable(res stats.SimulationStats) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	table.Append([]string{"P10", format.KRW(res.P10, 0)})
	table.Append([]string{"P50", format.KRW(res.P50, 0)})
	table.Append([]string{"P90", format.KRW(res.P90, 0)})
	table.Append([]string{"Min", format.KRW(res.Min, 0)})
	table.Append([]string{"Max", format.KRW(res.Max, 0)})
	table.Append([]string{"Mean", format.KRW(res.Mean, 0)})
	table.Append([]string{"Std Dev", format.KRW(res.StdDev, 0)})
	if res.BenchmarkBeatRate != nil {
		table.Append([]string{"Beat Benchmark", strconv.FormatFloat(*res.BenchmarkBeatRate, 'f', 1, 64) + "%"})
	}
	if res.MedianBenchmarkReturnPct != nil {
		table.Append([]string{"Benchmark Median Return", strconv.FormatFloat(*res.MedianBenchmarkReturnPct, 'f', 1, 64) + "%"})
	}

	table.Render()
	return s.String()
}

func histogramTable(bins []stats.HistogramBin) string {
	total := 0
	for _, bin := range bins {
		total += bin.Count
	}

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Range", "Count", "Share", ""})
	table.SetBorder(false)

	for _, bin := range bins {
		share := 0.0
		if total > 0 {
			share = float64(bin.Count) / float64(total)
		}
		table.Append([]string{
			bin.Label,
			strconv.Itoa(bin.Count),
			strconv.FormatFloat(share*100, 'f', 1, 64) + "%",
			strings.Repeat("█", int(share*100)),
		})
	}

	table.Render()
	return s.String()
}

func writePNG(fn string, render func() ([]byte, error)) error {
	buf, err := render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(fn, buf, 0644); err != nil {
		return err
	}
	log.Info().Str("File", fn).Int("Bytes", len(buf)).Msg("wrote chart")
	return nil
}
