// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
)

// Simulate runs a population forward through state and shock panels.
// MAIN DESCRIPTION, for every period t and agent with state s = hist[t]:
//   - p = pPrev·Perm, b = rfree[s]/Perm · aPrev, m = b + Tran;
//   - c, MPC = cFunc(m) and its derivative with cFunc = policy.CFunc(t, s);
//   - a = m - c.
//
// Period 0 starts from aInit and pInit.
//
// Errors:
//   - ErrDimensionMismatch for inconsistent shapes, ErrInvalidState for a
//     state without a return factor.
//
// Complexity:
//   - Time O(periods · agents · log K) for K interpolation knots.
func Simulate(policy Policy, rfree []float64, hist [][]int, shocks Shocks, aInit, pInit []float64) (Result, error) {
	periods := len(hist)
	if periods == 0 || len(shocks.Perm) != periods || len(shocks.Tran) != periods {
		return Result{}, fmt.Errorf("Simulate: periods hist=%d perm=%d tran=%d: %w",
			periods, len(shocks.Perm), len(shocks.Tran), ErrDimensionMismatch)
	}
	n := len(aInit)
	if len(pInit) != n {
		return Result{}, fmt.Errorf("Simulate: aInit=%d pInit=%d: %w", n, len(pInit), ErrDimensionMismatch)
	}

	res := Result{
		PLvl: make([][]float64, periods), BNrm: make([][]float64, periods), MNrm: make([][]float64, periods),
		CNrm: make([][]float64, periods), ANrm: make([][]float64, periods), MPC: make([][]float64, periods),
	}
	aPrev, pPrev := aInit, pInit
	for t := 0; t < periods; t++ {
		if len(hist[t]) != n || len(shocks.Perm[t]) != n || len(shocks.Tran[t]) != n {
			return Result{}, fmt.Errorf("Simulate: period %d: %w", t, ErrDimensionMismatch)
		}
		p, b, m := make([]float64, n), make([]float64, n), make([]float64, n)
		c, a, mpc := make([]float64, n), make([]float64, n), make([]float64, n)
		for i, s := range hist[t] {
			if s < 0 || s >= len(rfree) {
				return Result{}, fmt.Errorf("Simulate: period %d agent %d state %d: %w", t, i, s, ErrInvalidState)
			}
			psi := shocks.Perm[t][i]
			p[i] = pPrev[i] * psi
			b[i] = rfree[s] / psi * aPrev[i]
			m[i] = b[i] + shocks.Tran[t][i]
			f := policy.CFunc(t, s)
			c[i], mpc[i] = f.Eval(m[i]), f.Derivative(m[i])
			a[i] = m[i] - c[i]
		}
		res.PLvl[t], res.BNrm[t], res.MNrm[t] = p, b, m
		res.CNrm[t], res.ANrm[t], res.MPC[t] = c, a, mpc
		aPrev, pPrev = a, p
	}

	return res, nil
}
