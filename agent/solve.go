// SPDX-License-Identifier: MIT

package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/consmarkov/markov"
	"github.com/katalvlaran/consmarkov/utility"
	"go.uber.org/zap"
)

// Solve runs backward induction for t.
// MAIN DESCRIPTION:
//   - Starts from the terminal (consume everything) solution.
//   - Solves the cycle backward, period by period, Cycles times; or, with
//     Cycles == 0, until the distance between the first-period solutions of
//     two successive cycles is below Tolerance.
//
// ctx is checked between periods.
//
// Errors:
//   - ErrInvalidType, ErrNoConvergence, ctx.Err(), and markov.Solve errors
//     annotated with the period index.
func (t *Type) Solve(ctx context.Context, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("type", t.Name))
	if err := t.validate(); err != nil {
		return Result{}, err
	}
	u, err := utility.NewCRRA(t.CRRA)
	if err != nil {
		return Result{}, fmt.Errorf("agent %q: %w: %w", t.Name, err, ErrInvalidType)
	}

	start := time.Now()
	next := markov.Terminal(u, t.StateCount())
	var res Result
	if t.Cycles > 0 {
		res.Solutions = make([]*markov.PeriodSolution, len(t.Periods)*t.Cycles)
		k := len(res.Solutions)
		for c := 0; c < t.Cycles; c++ {
			cycle, err := t.solveCycle(ctx, next)
			if err != nil {
				return Result{}, err
			}
			k -= len(cycle)
			copy(res.Solutions[k:], cycle)
			next = cycle[0]
			res.Iterations++
			logger.Debug("cycle solved", zap.Int("cycle", res.Iterations))
		}
		logger.Info("finite-horizon solve complete",
			zap.Int("periods", len(res.Solutions)), zap.Duration("elapsed", time.Since(start)))
		return res, nil
	}

	tol, maxIter := t.Tolerance, t.MaxIterations
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	var prev []*markov.PeriodSolution
	for res.Iterations < maxIter {
		cycle, err := t.solveCycle(ctx, next)
		if err != nil {
			return Result{}, err
		}
		res.Iterations++
		if prev != nil {
			res.Distance = Distance(cycle[0], prev[0], t.AXtraGrid)
			logger.Debug("cycle solved", zap.Int("cycle", res.Iterations), zap.Float64("distance", res.Distance))
			if res.Distance < tol {
				res.Solutions = cycle
				logger.Info("infinite-horizon solve converged",
					zap.Int("cycles", res.Iterations),
					zap.Float64("distance", res.Distance),
					zap.Duration("elapsed", time.Since(start)))
				return res, nil
			}
		}
		prev, next = cycle, cycle[0]
	}
	logger.Warn("infinite-horizon solve did not converge",
		zap.Int("cycles", res.Iterations), zap.Float64("distance", res.Distance))

	return Result{}, fmt.Errorf("agent %q: distance %g after %d cycles: %w", t.Name, res.Distance, res.Iterations, ErrNoConvergence)
}

// solveCycle solves one cycle backward from next and returns it in forward
// order.
func (t *Type) solveCycle(ctx context.Context, next *markov.PeriodSolution) ([]*markov.PeriodSolution, error) {
	out := make([]*markov.PeriodSolution, len(t.Periods))
	opts := []markov.Option{markov.WithConstraintTolerance(t.ConstraintTolerance)}
	for k := len(t.Periods) - 1; k >= 0; k-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := t.Periods[k]
		sol, err := markov.Solve(markov.Inputs{
			Next:        next,
			IncomeDstn:  p.IncomeDstn,
			LivPrb:      p.LivPrb,
			DiscFac:     t.DiscFac,
			CRRA:        t.CRRA,
			Rfree:       t.Rfree,
			PermGroFac:  p.PermGroFac,
			MrkvArray:   t.MrkvArray,
			BoroCnstArt: t.BoroCnstArt,
			AXtraGrid:   t.AXtraGrid,
			VFunc:       t.VFunc,
			Cubic:       t.Cubic,
		}, opts...)
		if err != nil {
			return nil, fmt.Errorf("agent %q: period %d: %w", t.Name, k, err)
		}
		out[k], next = sol, sol
	}

	return out, nil
}

func (t *Type) validate() error {
	switch {
	case t.MrkvArray == nil:
		return fmt.Errorf("agent %q: nil transition matrix: %w", t.Name, ErrInvalidType)
	case len(t.Periods) == 0:
		return fmt.Errorf("agent %q: no periods: %w", t.Name, ErrInvalidType)
	case t.Cycles < 0:
		return fmt.Errorf("agent %q: cycles=%d: %w", t.Name, t.Cycles, ErrInvalidType)
	case math.IsNaN(t.ConstraintTolerance) || t.ConstraintTolerance < 0:
		return fmt.Errorf("agent %q: constraint tolerance %g: %w", t.Name, t.ConstraintTolerance, ErrInvalidType)
	}

	return nil
}

// Distance is the largest absolute difference between a and b over all
// states: in MNrmMin, and in the consumption functions evaluated at
// max(MNrmMin) + grid.
func Distance(a, b *markov.PeriodSolution, grid []float64) float64 {
	if a.StateCount() != b.StateCount() {
		return math.Inf(1)
	}
	d := 0.0
	for i := 0; i < a.StateCount(); i++ {
		d = math.Max(d, math.Abs(a.MNrmMin[i]-b.MNrmMin[i]))
		lo := math.Max(a.MNrmMin[i], b.MNrmMin[i])
		for _, x := range grid {
			d = math.Max(d, math.Abs(a.CFunc[i].Eval(lo+x)-b.CFunc[i].Eval(lo+x)))
		}
	}

	return d
}
