// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/simulate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

var simEvery int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Solve the model and simulate a population under the solved policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		typ, err := cfg.Build()
		if err != nil {
			return err
		}
		res, err := typ.Solve(ctx, logger)
		if err != nil {
			return err
		}

		sc := cfg.Simulation
		start := make([]int, sc.Agents)
		for i := range start {
			start[i] = sc.InitState
		}
		hist, err := simulate.MarkovHistory(typ.MrkvArray, start, sc.Periods, sc.Seed)
		if err != nil {
			return err
		}
		dstn := make([][]income.Distribution, len(typ.Periods))
		gro := make([][]float64, len(typ.Periods))
		for k, p := range typ.Periods {
			dstn[k], gro[k] = p.IncomeDstn, p.PermGroFac
		}
		shocks, err := simulate.IncomeShockHistory(hist, dstn, gro, sc.Seed)
		if err != nil {
			return err
		}
		aInit, pInit := make([]float64, sc.Agents), make([]float64, sc.Agents)
		for i := range pInit {
			pInit[i] = 1
		}
		panel, err := simulate.Simulate(simulate.Cycle(res.Solutions), typ.Rfree, hist, shocks, aInit, pInit)
		if err != nil {
			return err
		}
		freq, err := simulate.StateFrequencies(hist, typ.StateCount())
		if err != nil {
			return err
		}
		logger.Info("simulation complete", zap.Int("agents", sc.Agents), zap.Int("periods", sc.Periods))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprint(w, "t\tmean m\tmean c\tmean a\tmean MPC")
		for _, s := range cfg.States {
			fmt.Fprintf(w, "\t%s", s.Name)
		}
		fmt.Fprintln(w)
		every := max(simEvery, 1)
		for t := 0; t < sc.Periods; t += every {
			fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f", t,
				stat.Mean(panel.MNrm[t], nil), stat.Mean(panel.CNrm[t], nil),
				stat.Mean(panel.ANrm[t], nil), stat.Mean(panel.MPC[t], nil))
			for _, f := range freq[t] {
				fmt.Fprintf(w, "\t%.3f", f)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simEvery, "every", 10, "Report every n-th period")
}
