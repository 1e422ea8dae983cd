// SPDX-License-Identifier: MIT

package agent

import (
	"errors"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/markov"
	"github.com/katalvlaran/consmarkov/matrix"
)

// Sentinel errors.
var (
	// ErrInvalidType is returned for a type that cannot be solved as given.
	ErrInvalidType = errors.New("agent: invalid type")

	// ErrNoConvergence is returned when an infinite-horizon solve exhausts
	// MaxIterations.
	ErrNoConvergence = errors.New("agent: infinite-horizon solve did not converge")
)

// Defaults for infinite-horizon solves.
const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 2000
)

// Period holds the inputs that may vary over the life cycle. Slices are
// indexed by Markov state.
type Period struct {
	IncomeDstn []income.Distribution
	LivPrb     float64
	PermGroFac []float64
}

// Type is one consumer type.
type Type struct {
	Name string

	CRRA        float64
	DiscFac     float64
	Rfree       []float64
	MrkvArray   matrix.Matrix
	BoroCnstArt *float64
	AXtraGrid   []float64
	VFunc       bool
	Cubic       bool

	// Periods is one cycle of period inputs in forward time order.
	Periods []Period
	// Cycles is the number of times the cycle repeats; 0 solves the
	// infinite-horizon problem.
	Cycles int

	Tolerance           float64 // infinite horizon; 0 selects DefaultTolerance
	MaxIterations       int     // infinite horizon; 0 selects DefaultMaxIterations
	ConstraintTolerance float64 // see markov.WithConstraintTolerance
}

// Result is the outcome of Solve.
type Result struct {
	// Solutions are in forward time order. A finite horizon yields
	// len(Periods)·Cycles entries; an infinite horizon yields one converged
	// cycle.
	Solutions []*markov.PeriodSolution
	// Iterations counts solved cycles.
	Iterations int
	// Distance is the last cycle-to-cycle distance (infinite horizon only).
	Distance float64
}

// StateCount returns the number of Markov states.
func (t *Type) StateCount() int {
	if t.MrkvArray == nil {
		return 0
	}
	return t.MrkvArray.Rows()
}
