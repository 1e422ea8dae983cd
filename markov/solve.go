// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/katalvlaran/consmarkov/utility"
)

// period is the working context of one Solve call. Each stage reads the
// fields filled by earlier stages; nothing outlives the call.
type period struct {
	in         Inputs
	opts       options
	u          utility.CRRA
	n          int
	probs      [][]float64
	discFacEff float64
	cons       Constraints
	cond       []conditional
}

// Solve computes this period's solution for every current state from next
// period's solution in in.Next.
//
// Stages:
//   - validate every input; errors wrap ErrInvalidParameter or ErrConfigConflict;
//   - ResolveConstraints;
//   - conditional end-of-period functions per reachable next state;
//   - aggregation per current state through MrkvArray;
//   - human wealth and bounding MPCs;
//   - consumption, marginal value and optional value functions per state.
//
// On error the returned solution is nil; there are no partial results.
func Solve(in Inputs, opts ...Option) (*PeriodSolution, error) {
	u, reach, err := validate(in)
	if err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}
	p := &period{
		in:         in,
		opts:       gatherOptions(opts),
		u:          u,
		n:          in.MrkvArray.Rows(),
		discFacEff: in.DiscFac * in.LivPrb,
	}
	if p.probs, err = rowsOf(in.MrkvArray); err != nil {
		return nil, fmt.Errorf("markov.Solve: %w: %w", err, ErrInvalidParameter)
	}

	ci := ConstraintInputs{
		MrkvArray:   in.MrkvArray,
		TranShkMin:  make([]float64, p.n),
		PermShkMin:  make([]float64, p.n),
		PermShkMax:  make([]float64, p.n),
		MNrmMinNext: in.Next.MNrmMin,
		Rfree:       in.Rfree,
		PermGroFac:  in.PermGroFac,
		BoroCnstArt: in.BoroCnstArt,
		Tol:         p.opts.cnstTol,
	}
	for j, d := range in.IncomeDstn {
		if reach[j] {
			ci.TranShkMin[j], ci.PermShkMin[j], ci.PermShkMax[j] = d.MinTranShk(), d.MinPermShk(), d.MaxPermShk()
		}
	}
	if p.cons, err = ResolveConstraints(ci); err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}
	if p.cond, err = buildConditionals(p); err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}
	eop, err := aggregate(p)
	if err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}
	b, err := bounds(p)
	if err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}
	pol, err := buildPolicies(p, eop, b)
	if err != nil {
		return nil, fmt.Errorf("markov.Solve: %w", err)
	}

	sol := &PeriodSolution{
		CFunc:       pol.cFunc,
		VPFunc:      pol.vPFunc,
		VFunc:       pol.vFunc,
		VPPFunc:     pol.vPPFunc,
		MNrmMin:     append([]float64(nil), p.cons.MNrmMin...),
		BoroCnstNat: append([]float64(nil), p.cons.Nat...),
		HNrm:        make([]float64, p.n),
		MPCMin:      make([]float64, p.n),
		MPCMax:      make([]float64, p.n),
	}
	for i, bi := range b {
		sol.HNrm[i], sol.MPCMin[i], sol.MPCMax[i] = bi.HNrm, bi.MPCMin, bi.MPCMaxEff
	}

	return sol, nil
}

// rowsOf copies the rows of m.
func rowsOf(m matrix.Matrix) ([][]float64, error) {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}
