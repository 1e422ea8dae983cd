// SPDX-License-Identifier: MIT

package simulate

import (
	"errors"

	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/markov"
)

// Sentinel errors.
var (
	// ErrInvalidState is returned when an agent's state is outside 0..N-1.
	ErrInvalidState = errors.New("simulate: state index out of range")

	// ErrDimensionMismatch is returned when panels or per-state inputs have
	// inconsistent shapes.
	ErrDimensionMismatch = errors.New("simulate: dimension mismatch")

	// ErrInvalidPeriods is returned for a non-positive number of periods.
	ErrInvalidPeriods = errors.New("simulate: periods must be > 0")
)

// Shocks are permanent and transitory income-shock panels. Perm already
// includes the permanent growth factor of the agent's state.
type Shocks struct {
	Perm [][]float64
	Tran [][]float64
}

// Policy supplies the consumption function used in simulated period t by an
// agent in the given state.
type Policy interface {
	CFunc(t, state int) interp.Func
}

// Cycle is a sequence of period solutions in forward time order. Period t
// uses element t mod len(c).
type Cycle []*markov.PeriodSolution

// CFunc implements Policy.
func (c Cycle) CFunc(t, state int) interp.Func {
	return c[t%len(c)].CFunc[state]
}

// Result holds the simulated panels.
type Result struct {
	PLvl [][]float64 // permanent income level
	BNrm [][]float64 // bank balances before labor income
	MNrm [][]float64 // market resources
	CNrm [][]float64 // consumption
	ANrm [][]float64 // end-of-period assets
	MPC  [][]float64 // marginal propensity to consume
}
