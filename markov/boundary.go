// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/matrix"
)

// ConstraintInputs are the per-next-state quantities that determine
// borrowing limits. Entries of unreachable next states are ignored.
type ConstraintInputs struct {
	MrkvArray   matrix.Matrix
	TranShkMin  []float64
	PermShkMin  []float64
	PermShkMax  []float64
	MNrmMinNext []float64
	Rfree       []float64
	PermGroFac  []float64
	BoroCnstArt *float64
	Tol         float64
}

// Constraints are the resolved borrowing limits of one period.
type Constraints struct {
	// NatAll[j] is the natural constraint conditional on moving to state j;
	// NaN when j is unreachable.
	NatAll []float64
	// Nat[i] is the natural constraint of current state i: the maximum of
	// NatAll over the states reachable from i.
	Nat []float64
	// MNrmMin[i] is max(Nat[i], BoroCnstArt), or Nat[i] without an artificial limit.
	MNrmMin []float64
	// Binding[i][j] reports whether j is reachable from i and NatAll[j]
	// equals Nat[i], i.e. whether landing in j can make i's limit bind.
	Binding [][]bool
	// Reachable[j] reports whether some current state reaches j.
	Reachable []bool
}

// ResolveConstraints computes natural and effective borrowing constraints.
// MAIN DESCRIPTION:
//   - Per next state j: NatAll[j] = (MNrmMinNext[j] - TranShkMin[j]) *
//     PermGroFac[j] * ψ / Rfree[j], with ψ = PermShkMin[j] when the first
//     factor is <= 0 and PermShkMax[j] when it is positive.
//   - Per current state i: Nat[i] = max over j with P[i,j] > 0.
//
// Behavior highlights:
//   - An artificial constraint looser than every natural one has no effect.
//   - Binding uses |NatAll[j]-Nat[i]| <= Tol*max(1,|Nat[i]|); Tol = 0 is exact.
//
// Errors:
//   - ErrInvalidParameter (shape), ErrNumericalDegeneracy (a row with no
//     positive entry).
//
// Complexity:
//   - Time O(N²), Space O(N²).
func ResolveConstraints(ci ConstraintInputs) (Constraints, error) {
	if err := matrix.ValidateSquare(ci.MrkvArray); err != nil {
		return Constraints{}, fmt.Errorf("ResolveConstraints: %w: %w", err, ErrInvalidParameter)
	}
	n := ci.MrkvArray.Rows()
	for _, s := range [][]float64{ci.TranShkMin, ci.PermShkMin, ci.PermShkMax, ci.MNrmMinNext, ci.Rfree, ci.PermGroFac} {
		if len(s) != n {
			return Constraints{}, fmt.Errorf("ResolveConstraints: per-state length %d, want %d: %w", len(s), n, ErrInvalidParameter)
		}
	}
	reach, err := matrix.Reachable(ci.MrkvArray)
	if err != nil {
		return Constraints{}, fmt.Errorf("ResolveConstraints: %w: %w", err, ErrInvalidParameter)
	}

	c := Constraints{
		NatAll:    make([]float64, n),
		Nat:       make([]float64, n),
		MNrmMin:   make([]float64, n),
		Binding:   make([][]bool, n),
		Reachable: reach,
	}
	for j := 0; j < n; j++ {
		if !reach[j] {
			c.NatAll[j] = math.NaN()
			continue
		}
		c.NatAll[j] = egm.NaturalConstraint(ci.MNrmMinNext[j], ci.TranShkMin[j], ci.PermShkMin[j], ci.PermShkMax[j],
			ci.Rfree[j], ci.PermGroFac[j])
	}

	for i := 0; i < n; i++ {
		succ, err := matrix.Successors(ci.MrkvArray, i)
		if err != nil {
			return Constraints{}, fmt.Errorf("ResolveConstraints: %w: %w", err, ErrInvalidParameter)
		}
		if len(succ) == 0 {
			return Constraints{}, fmt.Errorf("ResolveConstraints: state %d has no successor: %w", i, ErrNumericalDegeneracy)
		}
		nat := math.Inf(-1)
		for _, j := range succ {
			nat = math.Max(nat, c.NatAll[j])
		}
		c.Nat[i] = nat
		c.MNrmMin[i] = nat
		if ci.BoroCnstArt != nil {
			c.MNrmMin[i] = math.Max(nat, *ci.BoroCnstArt)
		}
		c.Binding[i] = make([]bool, n)
		for _, j := range succ {
			c.Binding[i][j] = math.Abs(c.NatAll[j]-nat) <= ci.Tol*math.Max(1, math.Abs(nat))
		}
	}

	return c, nil
}
