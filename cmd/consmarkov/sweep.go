// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/consmarkov/agent"
	"github.com/spf13/cobra"
)

var (
	sweepCRRA []float64
	sweepAt   float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Solve one type per risk-aversion value in parallel",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		types := make([]*agent.Type, len(sweepCRRA))
		for i, rho := range sweepCRRA {
			c := *cfg
			c.CRRA = rho
			c.Name = fmt.Sprintf("%s-crra-%g", cfg.Name, rho)
			if types[i], err = c.Build(); err != nil {
				return err
			}
		}
		results, err := agent.SolveTypes(ctx, types, logger)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprint(w, "crra\tcycles")
		for _, s := range cfg.States {
			fmt.Fprintf(w, "\tc(%g) %s", sweepAt, s.Name)
		}
		fmt.Fprintln(w)
		for i, res := range results {
			sol := res.Solutions[0]
			fmt.Fprintf(w, "%g\t%d", sweepCRRA[i], res.Iterations)
			for s := range cfg.States {
				fmt.Fprintf(w, "\t%.4f", sol.CFunc[s].Eval(sweepAt))
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	sweepCmd.Flags().Float64SliceVar(&sweepCRRA, "crra", []float64{1.5, 2, 2.5, 3, 3.5, 4}, "Risk-aversion values")
	sweepCmd.Flags().Float64Var(&sweepAt, "at", 2, "Market resources at which to report consumption")
}
