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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pv-montecarlo/portfolio"
	"github.com/penny-vault/pv-montecarlo/scenario"
)

var _ = Describe("loadScenario", func() {
	var (
		cmd *cobra.Command
		dir string
	)

	BeforeEach(func() {
		cmd = &cobra.Command{Use: "test"}
		addScenarioFlags(cmd.Flags())

		var err error
		dir, err = os.MkdirTemp("", "cmd")
		Expect(err).To(BeNil())
		DeferCleanup(os.RemoveAll, dir)
	})

	It("uses the defaults when no flags are given", func() {
		Expect(cmd.Flags().Parse([]string{})).To(Succeed())

		sc, err := loadScenario(cmd)
		Expect(err).To(BeNil())
		Expect(sc).To(Equal(scenario.Default()))
	})

	It("applies flags given on the command line", func() {
		Expect(cmd.Flags().Parse([]string{
			"--years", "20",
			"--strategy", "GLIDE_CASH",
			"--end-ratio", "60",
			"--seed", "7",
		})).To(Succeed())

		sc, err := loadScenario(cmd)
		Expect(err).To(BeNil())
		Expect(sc.DurationYears).To(Equal(20))
		Expect(sc.Strategy.Kind).To(Equal(portfolio.GLIDE_CASH))
		Expect(sc.Strategy.StartRatio).To(Equal(20.0))
		Expect(sc.Strategy.EndRatio).To(Equal(60.0))
		Expect(sc.Seed).To(Equal(int64(7)))
	})

	It("keeps file values for flags that were not set", func() {
		fn := filepath.Join(dir, "scenario.toml")
		Expect(os.WriteFile(fn, []byte(`
initial_capital = 50000000
monthly_contribution = 1000000
duration_years = 30

[market]
volatility = 25
`), 0600)).To(Succeed())

		Expect(cmd.Flags().Parse([]string{"--scenario", fn, "--years", "5"})).To(Succeed())

		sc, err := loadScenario(cmd)
		Expect(err).To(BeNil())
		Expect(sc.InitialCapital).To(Equal(50_000_000.0))
		Expect(sc.MonthlyContribution).To(Equal(1_000_000.0))
		Expect(sc.Market.Volatility).To(Equal(25.0))
		Expect(sc.DurationYears).To(Equal(5))
	})

	It("reports a scenario file that cannot be read", func() {
		Expect(cmd.Flags().Parse([]string{"--scenario", filepath.Join(dir, "missing.toml")})).To(Succeed())

		_, err := loadScenario(cmd)
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
