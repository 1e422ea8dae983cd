// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/matrix"
)

// bounds computes human wealth and the bounding MPCs of every current state.
// MAIN DESCRIPTION:
//   - hNrm = P · (G/R ⊙ (ExInc + hNrmNext)).
//   - MPCmin_i = 1 / (1 + (β·L·[P · (MPCminNext^-ρ ⊙ R^(1-ρ))]_i)^(1/ρ)).
//   - With W[i,j] = P[i,j]·Binding[i,j]·WorstIncPrb[j] and w = rowsum(W):
//     ExMPCmax_i = ([W · (R^(1-ρ) ⊙ MPCmaxNext^-ρ)]_i / w_i)^(-1/ρ),
//     MPCmax_i = 1 / (1 + (β·L·w_i)^(1/ρ) / ExMPCmax_i).
//   - MPCmaxEff_i = 1 where an artificial constraint binds (Nat_i < MNrmMin_i).
//
// Vectors carry 0 for unreachable next states; P weights them by zero and
// the kernels skip zero weights.
//
// Errors:
//   - ErrNumericalDegeneracy when some w_i is zero.
func bounds(p *period) ([]egm.Bounds, error) {
	n, rho, next := p.n, p.u.Rho(), p.in.Next

	hTerm := make([]float64, n)
	minTerm := make([]float64, n)
	maxTerm := make([]float64, n)
	for j := 0; j < n; j++ {
		if !p.cons.Reachable[j] {
			continue
		}
		r, g := p.in.Rfree[j], p.in.PermGroFac[j]
		hTerm[j] = g / r * (p.cond[j].exInc + next.HNrm[j])
		minTerm[j] = math.Pow(next.MPCMin[j], -rho) * math.Pow(r, 1-rho)
		maxTerm[j] = math.Pow(r, 1-rho) * math.Pow(next.MPCMax[j], -rho)
	}

	hNrm, err := matrix.MatVec(p.in.MrkvArray, hTerm)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w: %w", err, ErrInvalidParameter)
	}
	minSum, err := matrix.MatVec(p.in.MrkvArray, minTerm)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w: %w", err, ErrInvalidParameter)
	}

	worst, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w: %w", err, ErrInvalidParameter)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !p.cons.Binding[i][j] {
				continue
			}
			if err = worst.Set(i, j, p.probs[i][j]*p.cond[j].worstIncPrb); err != nil {
				return nil, fmt.Errorf("bounds: %w: %w", err, ErrNumericalDegeneracy)
			}
		}
	}
	worstNow, err := matrix.RowSums(worst)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w: %w", err, ErrNumericalDegeneracy)
	}
	maxSum, err := matrix.MatVec(worst, maxTerm)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w: %w", err, ErrNumericalDegeneracy)
	}

	out := make([]egm.Bounds, n)
	for i := 0; i < n; i++ {
		if !(worstNow[i] > 0) {
			return nil, fmt.Errorf("bounds: state %d: worst income events have zero probability: %w", i, ErrNumericalDegeneracy)
		}
		exMPCMax := math.Pow(maxSum[i]/worstNow[i], -1/rho)
		b := egm.Bounds{
			HNrm:   hNrm[i],
			MPCMin: 1 / (1 + math.Pow(p.discFacEff*minSum[i], 1/rho)),
			MPCMax: 1 / (1 + math.Pow(p.discFacEff*worstNow[i], 1/rho)/exMPCMax),
		}
		b.MPCMaxEff = b.MPCMax
		if p.cons.Nat[i] < p.cons.MNrmMin[i] {
			b.MPCMaxEff = 1
		}
		out[i] = b
	}

	return out, nil
}
