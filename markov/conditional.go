// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/interp"
)

// conditional holds end-of-period functions conditional on next state j.
type conditional struct {
	vP          interp.Func // marginal value; its derivative is marginal-marginal value
	v           interp.Func // value; nil unless requested
	exInc       float64     // E[PermShk*TranShk]
	worstIncPrb float64     // probability of the worst income event
}

// buildConditionals constructs the conditional end-of-period functions of
// every reachable next state on a = NatAll[j] + aXtra. Unreachable states
// keep a zero value.
func buildConditionals(p *period) ([]conditional, error) {
	in := p.in
	out := make([]conditional, p.n)
	for j := 0; j < p.n; j++ {
		if !p.cons.Reachable[j] {
			continue
		}
		nat := p.cons.NatAll[j]
		a := egm.AssetGrid(nat, in.AXtraGrid)
		expect := egm.Expectation{
			U:          p.u,
			Dstn:       in.IncomeDstn[j],
			DiscFacEff: p.discFacEff,
			Rfree:      in.Rfree[j],
			PermGroFac: in.PermGroFac[j],
		}
		vP := expect.MargValue(a, in.Next.VPFunc[j])
		var vPP []float64
		if in.Cubic {
			vPP = expect.MargMargValue(a, in.Next.VPPFunc[j])
		}
		vPFunc, err := egm.MarginalValueInterp(p.u, a, vP, vPP)
		if err != nil {
			return nil, fmt.Errorf("next state %d: %w: %w", j, err, ErrNumericalDegeneracy)
		}
		c := conditional{
			vP:          vPFunc,
			exInc:       in.IncomeDstn[j].ExpectedIncome(),
			worstIncPrb: in.IncomeDstn[j].WorstIncPrb(),
		}
		if in.VFunc {
			v := expect.Value(a, in.Next.VFunc[j])
			vFunc, err := egm.ValueInterp(p.u, nat, a, v, vP)
			if err != nil {
				return nil, fmt.Errorf("next state %d: %w: %w", j, err, ErrNumericalDegeneracy)
			}
			c.v = vFunc
		}
		out[j] = c
	}

	return out, nil
}
