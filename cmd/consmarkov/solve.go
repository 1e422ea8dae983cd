// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/consmarkov/agent"
	"github.com/katalvlaran/consmarkov/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var solvePoints []float64

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the model and print the first-period policy of every state",
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
		logger.Debug("solved", zap.Int("cycles", res.Iterations), zap.Float64("distance", res.Distance))

		return writePolicy(cmd.OutOrStdout(), cfg, res, solvePoints)
	},
}

func init() {
	solveCmd.Flags().Float64SliceVar(&solvePoints, "points", []float64{0.5, 1, 2, 5, 10},
		"Market resources at which to report consumption")
}

// writePolicy prints bounds and consumption at the given market resources
// for every state of the first solved period.
func writePolicy(out io.Writer, cfg *config.Config, res agent.Result, points []float64) error {
	sol := res.Solutions[0]
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "state\tmNrmMin\thNrm\tMPCmin\tMPCmax")
	for _, m := range points {
		fmt.Fprintf(w, "\tc(%g)", m)
	}
	fmt.Fprintln(w)
	for i, s := range cfg.States {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f", s.Name, sol.MNrmMin[i], sol.HNrm[i], sol.MPCMin[i], sol.MPCMax[i])
		for _, m := range points {
			fmt.Fprintf(w, "\t%.4f", sol.CFunc[i].Eval(m))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
