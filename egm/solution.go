// SPDX-License-Identifier: MIT

// Package egm implements the endogenous grid method for a one-period
// consumption-saving problem with permanent and transitory income shocks.
//
// The package exposes two layers:
//   - building blocks (expectation over shocks, decurving interpolation,
//     endogenous-grid inversion, constrained branch, bounding MPCs, value
//     function construction) that the Markov solver composes per state;
//   - SolveOnePeriod, the single-state solver assembled from those blocks.
//
// All quantities are normalized by permanent income: m is market resources,
// a is end-of-period assets, c is consumption.
package egm

import (
	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/utility"
)

// Solution is the solution of one period for one discrete state.
//
// VFunc is nil unless the value function was requested; VPPFunc is nil
// unless cubic interpolation was requested.
type Solution struct {
	CFunc   interp.Func
	VPFunc  interp.Func
	VFunc   interp.Func
	VPPFunc interp.Func

	MNrmMin     float64 // minimum market resources (effective borrowing limit)
	BoroCnstNat float64 // natural borrowing constraint
	HNrm        float64 // human wealth
	MPCMin      float64 // limiting MPC as m → ∞
	MPCMax      float64 // MPC as m → MNrmMin (effective)
}

// Terminal returns the last-period solution: consume all market resources.
// Every function is present so that any earlier-period configuration can
// use it as its next-period solution.
func Terminal(u utility.CRRA) Solution {
	// The identity is built from constant knots and cannot fail.
	cFunc, _ := interp.NewLinear([]float64{0, 1}, []float64{0, 1}, interp.WithLowerExtrap())

	return Solution{
		CFunc:   cFunc,
		VPFunc:  MargValueFunc{CFunc: cFunc, U: u},
		VFunc:   ValueFunc{VNvrs: cFunc, U: u},
		VPPFunc: MargMargValueFunc{CFunc: cFunc, U: u},
		MNrmMin: 0,
		HNrm:    0,
		MPCMin:  1,
		MPCMax:  1,
	}
}
