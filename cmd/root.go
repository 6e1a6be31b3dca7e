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
	"io"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-montecarlo/common"
	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/scenario"
)

var (
	Profile bool

	logCloser   io.Closer
	profileFile *os.File
)

func init() {
	flags := rootCmd.PersistentFlags()
	addScenarioFlags(flags)

	// Execution
	viper.BindEnv("workers", "PVMC_WORKERS")
	flags.Int("workers", 0, "Number of simulation goroutines; 0 uses every CPU")
	viper.BindPFlag("workers", flags.Lookup("workers"))

	// Logging configuration
	viper.BindEnv("log.level", "PVMC_LOG_LEVEL")
	flags.String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", flags.Lookup("log-level"))

	viper.BindEnv("log.report_caller", "PVMC_LOG_REPORT_CALLER")
	flags.Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", flags.Lookup("log-report-caller"))

	viper.BindEnv("log.output", "PVMC_LOG_OUTPUT")
	flags.String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", flags.Lookup("log-output"))

	viper.BindEnv("log.pretty", "PVMC_LOG_PRETTY")
	flags.Bool("log-pretty", true, "Pretty print log messages")
	viper.BindPFlag("log.pretty", flags.Lookup("log-pretty"))

	flags.BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
}

var rootCmd = &cobra.Command{
	Use:     common.ProgramName,
	Version: common.CurrentVersion.String(),
	Short:   "Monte Carlo projections of a savings portfolio",
	Long: `pvmc projects a portfolio that receives monthly contributions and is
rebalanced between cash and a single risky asset. Market paths follow a
geometric Brownian motion; many paths are simulated to estimate the range of
outcomes and how often the strategy beats simply holding the asset.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logCloser, err = common.SetupLogging(); err != nil {
			return err
		}

		if Profile {
			if profileFile, err = os.Create("profile.out"); err != nil {
				return err
			}
			if err := pprof.StartCPUProfile(profileFile); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profileFile != nil {
			pprof.StopCPUProfile()
			profileFile.Close()
		}
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// addScenarioFlags registers the flags read by loadScenario
func addScenarioFlags(flags *pflag.FlagSet) {
	defaults := scenario.Default()

	flags.String("scenario", "", "TOML scenario file; flags override its values")
	flags.Float64("initial-capital", defaults.InitialCapital, "Initial capital in KRW")
	flags.Float64("monthly-contribution", defaults.MonthlyContribution, "Monthly contribution in KRW")
	flags.String("strategy", string(defaults.Strategy.Kind), "Rebalancing strategy: FIXED, GLIDE_CASH or GLIDE_LEVERAGE")
	flags.Float64("start-ratio", defaults.Strategy.StartRatio, "Starting cash % (FIXED, GLIDE_CASH) or leverage multiple (GLIDE_LEVERAGE)")
	flags.Float64("end-ratio", defaults.Strategy.EndRatio, "Ending cash % (GLIDE_CASH) or leverage multiple (GLIDE_LEVERAGE)")
	flags.Float64("borrow-cost", defaults.Strategy.BorrowCost, "Annual borrowing cost in percent (GLIDE_LEVERAGE)")
	flags.Int("years", defaults.DurationYears, "Duration of the simulation in years")
	flags.Float64("expected-return", defaults.Market.ExpectedReturn, "Expected annual return in percent")
	flags.Float64("volatility", defaults.Market.Volatility, "Annual volatility in percent")
	flags.Int64("seed", 0, "Random seed; 0 seeds from the clock")
}

// loadScenario starts from the scenario file, or the defaults, and applies
// every flag given on the command line
func loadScenario(cmd *cobra.Command) (scenario.Scenario, error) {
	flags := cmd.Flags()

	sc := scenario.Default()
	if fn, _ := flags.GetString("scenario"); fn != "" {
		var err error
		if sc, err = scenario.Load(fn); err != nil {
			return sc, err
		}
		log.Debug().Str("File", fn).Msg("loaded scenario")
	}

	overrideFloat(flags, "initial-capital", &sc.InitialCapital)
	overrideFloat(flags, "monthly-contribution", &sc.MonthlyContribution)
	overrideFloat(flags, "start-ratio", &sc.Strategy.StartRatio)
	overrideFloat(flags, "end-ratio", &sc.Strategy.EndRatio)
	overrideFloat(flags, "borrow-cost", &sc.Strategy.BorrowCost)
	overrideFloat(flags, "expected-return", &sc.Market.ExpectedReturn)
	overrideFloat(flags, "volatility", &sc.Market.Volatility)
	overrideInt(flags, "years", &sc.DurationYears)

	if flags.Changed("strategy") {
		kind, _ := flags.GetString("strategy")
		sc.Strategy.Kind = portfolio.StrategyKind(kind)
	}
	if flags.Changed("seed") {
		sc.Seed, _ = flags.GetInt64("seed")
	}

	return sc, nil
}

func overrideFloat(flags *pflag.FlagSet, name string, target *float64) {
	if flags.Changed(name) {
		*target, _ = flags.GetFloat64(name)
	}
}

func overrideInt(flags *pflag.FlagSet, name string, target *int) {
	if flags.Changed(name) {
		*target, _ = flags.GetInt(name)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
