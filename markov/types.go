// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/katalvlaran/consmarkov/utility"
)

// Error kinds. They alias the egm sentinels so that callers can match errors
// from either solver with the same values.
var (
	ErrInvalidParameter    = egm.ErrInvalidParameter
	ErrNumericalDegeneracy = egm.ErrNumericalDegeneracy
	ErrConfigConflict      = egm.ErrConfigConflict
)

// Inputs configures one period solve. Slices indexed by state have length N,
// the order of MrkvArray; IncomeDstn, Rfree and PermGroFac are indexed by the
// next-period state.
type Inputs struct {
	Next        *PeriodSolution
	IncomeDstn  []income.Distribution
	LivPrb      float64
	DiscFac     float64
	CRRA        float64
	Rfree       []float64
	PermGroFac  []float64
	MrkvArray   matrix.Matrix
	BoroCnstArt *float64 // nil: no artificial constraint
	AXtraGrid   []float64
	VFunc       bool
	Cubic       bool
}

// PeriodSolution holds one period's solution for every current state.
// VFunc is nil unless requested, VPPFunc is nil unless cubic interpolation was
// used. A next-period solution may leave entries nil for states that are
// never reached.
type PeriodSolution struct {
	CFunc   []interp.Func
	VPFunc  []interp.Func
	VFunc   []interp.Func
	VPPFunc []interp.Func

	MNrmMin     []float64
	BoroCnstNat []float64
	HNrm        []float64
	MPCMin      []float64
	MPCMax      []float64
}

// StateCount returns the number of discrete states.
func (s *PeriodSolution) StateCount() int { return len(s.MNrmMin) }

// State returns the solution conditional on current state i.
func (s *PeriodSolution) State(i int) egm.Solution {
	out := egm.Solution{
		MNrmMin: s.MNrmMin[i],
		HNrm:    s.HNrm[i],
		MPCMin:  s.MPCMin[i],
		MPCMax:  s.MPCMax[i],
	}
	if i < len(s.BoroCnstNat) {
		out.BoroCnstNat = s.BoroCnstNat[i]
	}
	out.CFunc = at(s.CFunc, i)
	out.VPFunc = at(s.VPFunc, i)
	out.VFunc = at(s.VFunc, i)
	out.VPPFunc = at(s.VPPFunc, i)

	return out
}

func at(fs []interp.Func, i int) interp.Func {
	if i < len(fs) {
		return fs[i]
	}
	return nil
}

// Terminal returns the consume-everything solution replicated over n states.
func Terminal(u utility.CRRA, n int) *PeriodSolution {
	s := &PeriodSolution{
		CFunc:       make([]interp.Func, n),
		VPFunc:      make([]interp.Func, n),
		VFunc:       make([]interp.Func, n),
		VPPFunc:     make([]interp.Func, n),
		MNrmMin:     make([]float64, n),
		BoroCnstNat: make([]float64, n),
		HNrm:        make([]float64, n),
		MPCMin:      make([]float64, n),
		MPCMax:      make([]float64, n),
	}
	t := egm.Terminal(u)
	for i := 0; i < n; i++ {
		s.CFunc[i], s.VPFunc[i], s.VFunc[i], s.VPPFunc[i] = t.CFunc, t.VPFunc, t.VFunc, t.VPPFunc
		s.MNrmMin[i], s.HNrm[i], s.MPCMin[i], s.MPCMax[i] = t.MNrmMin, t.HNrm, t.MPCMin, t.MPCMax
	}

	return s
}

// Option configures Solve.
type Option func(*options)

type options struct {
	cnstTol float64
}

// DefaultConstraintTolerance makes the binding-constraint test an exact
// floating-point comparison.
const DefaultConstraintTolerance = 0.0

// WithConstraintTolerance sets the relative tolerance used to decide whether a
// next state's natural constraint equals the current state's binding one:
// |a-b| <= tol*max(1,|b|). It panics on negative or NaN tol.
func WithConstraintTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 {
		panic(fmt.Sprintf("markov: WithConstraintTolerance(%g): tolerance must be >= 0", tol))
	}
	return func(o *options) { o.cnstTol = tol }
}

func gatherOptions(opts []Option) options {
	o := options{cnstTol: DefaultConstraintTolerance}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
