// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/interp"
)

// policies holds the per-current-state functions of one period.
type policies struct {
	cFunc   []interp.Func
	vPFunc  []interp.Func
	vPPFunc []interp.Func
	vFunc   []interp.Func
}

// buildPolicies runs the endogenous grid step for every current state and
// merges each unconstrained consumption function with its constrained branch.
// The unconstrained function is anchored at the natural constraint, where it
// reaches zero consumption; the constrained branch caps it at MNrmMin.
func buildPolicies(p *period, eop endOfPeriod, b []egm.Bounds) (policies, error) {
	out := policies{
		cFunc:  make([]interp.Func, p.n),
		vPFunc: make([]interp.Func, p.n),
	}
	if p.in.Cubic {
		out.vPPFunc = make([]interp.Func, p.n)
	}
	if p.in.VFunc {
		out.vFunc = make([]interp.Func, p.n)
	}

	for i := 0; i < p.n; i++ {
		nat := p.cons.Nat[i]
		a := egm.AssetGrid(nat, p.in.AXtraGrid)
		c, m := egm.InvertEndOfPrd(p.u, a, eop.vP[i])
		var vPP []float64
		if p.in.Cubic {
			vPP = eop.vPP[i]
		}
		unc, err := egm.ConsumptionFunc(p.u, nat, c, m, vPP, b[i])
		if err != nil {
			return policies{}, fmt.Errorf("state %d: %w: %w", i, err, ErrNumericalDegeneracy)
		}
		cFunc, vPFunc, vPPFunc := egm.Policy(p.u, unc, p.cons.MNrmMin[i], p.in.Cubic)
		out.cFunc[i], out.vPFunc[i] = cFunc, vPFunc
		if p.in.Cubic {
			out.vPPFunc[i] = vPPFunc
		}

		if p.in.VFunc {
			vFunc, err := egm.ValueFuncFromPolicy(p.u, p.cons.MNrmMin[i], p.in.AXtraGrid, cFunc, p.endOfPrdValue(i), b[i])
			if err != nil {
				return policies{}, fmt.Errorf("state %d: %w: %w", i, err, ErrNumericalDegeneracy)
			}
			out.vFunc[i] = vFunc
		}
	}

	return out, nil
}

// endOfPrdValue returns a ↦ Σ_j P[i,j]·v_j(a) over next states j reachable
// from i.
func (p *period) endOfPrdValue(i int) func(a float64) float64 {
	row := p.probs[i]
	return func(a float64) float64 {
		s := 0.0
		for j, pr := range row {
			if pr == 0 {
				continue
			}
			s += pr * p.cond[j].v.Eval(a)
		}
		return s
	}
}
