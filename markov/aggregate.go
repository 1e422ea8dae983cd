// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/matrix"
)

// endOfPeriod is the unconditional end-of-period marginal value (and its
// derivative when cubic) of each current state on a = Nat[i] + aXtra.
type endOfPeriod struct {
	vP  [][]float64
	vPP [][]float64 // nil unless cubic
}

// groupByConstraint partitions current states by their natural constraint,
// preserving order of first appearance.
func groupByConstraint(nat []float64) [][]int {
	var (
		groups [][]int
		keys   []float64
	)
	for i, v := range nat {
		found := false
		for g, k := range keys {
			if k == v {
				groups[g] = append(groups[g], i)
				found = true
				break
			}
		}
		if !found {
			keys = append(keys, v)
			groups = append(groups, []int{i})
		}
	}

	return groups
}

// aggregate weights the conditional functions by transition probabilities.
// For each group of current states sharing a natural constraint, the
// conditional functions of the next states reachable from the group are
// evaluated once on the shared grid; the rows of every other next state stay
// zero and are multiplied by zero probabilities only.
func aggregate(p *period) (endOfPeriod, error) {
	n, k := p.n, len(p.in.AXtraGrid)
	out := endOfPeriod{vP: make([][]float64, n)}
	if p.in.Cubic {
		out.vPP = make([][]float64, n)
	}

	for _, group := range groupByConstraint(p.cons.Nat) {
		a := egm.AssetGrid(p.cons.Nat[group[0]], p.in.AXtraGrid)
		used := make([]bool, n)
		for _, i := range group {
			for j := 0; j < n; j++ {
				if p.probs[i][j] > 0 {
					used[j] = true
				}
			}
		}

		vPCond := make([][]float64, n)
		vPPCond := make([][]float64, n)
		for j := 0; j < n; j++ {
			vPCond[j] = make([]float64, k)
			vPPCond[j] = make([]float64, k)
			if !used[j] {
				continue
			}
			for x, ax := range a {
				vPCond[j][x] = p.cond[j].vP.Eval(ax)
				if p.in.Cubic {
					vPPCond[j][x] = p.cond[j].vP.Derivative(ax)
				}
			}
		}

		rows := make([][]float64, len(group))
		for r, i := range group {
			rows[r] = p.probs[i]
		}
		weights, err := matrix.NewDenseFromRows(rows)
		if err != nil {
			return endOfPeriod{}, fmt.Errorf("aggregate: %w: %w", err, ErrInvalidParameter)
		}
		vP, err := weighted(weights, vPCond)
		if err != nil {
			return endOfPeriod{}, err
		}
		for r, i := range group {
			out.vP[i] = vP[r]
		}
		if p.in.Cubic {
			vPP, err := weighted(weights, vPPCond)
			if err != nil {
				return endOfPeriod{}, err
			}
			for r, i := range group {
				out.vPP[i] = vPP[r]
			}
		}
	}

	return out, nil
}

// weighted returns the rows of weights × values. A non-finite conditional
// value is reported as a numerical degeneracy.
func weighted(weights *matrix.Dense, values [][]float64) ([][]float64, error) {
	v, err := matrix.NewDenseFromRows(values)
	if err != nil {
		return nil, fmt.Errorf("aggregate: conditional values: %w: %w", err, ErrNumericalDegeneracy)
	}
	prod, err := matrix.Mul(weights, v)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w: %w", err, ErrNumericalDegeneracy)
	}
	out := make([][]float64, prod.Rows())
	for r := range out {
		out[r] = make([]float64, prod.Cols())
		for c := range out[r] {
			if out[r][c], err = prod.At(r, c); err != nil {
				return nil, fmt.Errorf("aggregate: %w: %w", err, ErrNumericalDegeneracy)
			}
		}
	}

	return out, nil
}
