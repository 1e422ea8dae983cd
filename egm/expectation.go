// SPDX-License-Identifier: MIT

package egm

import (
	"math"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/utility"
)

// Expectation integrates next period's (marginal) value over the income
// shocks of one next-period state, returning end-of-period quantities on an
// asset grid. Next-period resources after event k are
//
//	m' = Rfree / (PermGroFac * PermShk[k]) * a + TranShk[k].
//
// Events with zero probability are skipped.
type Expectation struct {
	U          utility.CRRA
	Dstn       income.Distribution
	DiscFacEff float64 // DiscFac * LivPrb
	Rfree      float64
	PermGroFac float64
}

func (e Expectation) mNext(a float64, k int) float64 {
	return e.Rfree/(e.PermGroFac*e.Dstn.PermShk[k])*a + e.Dstn.TranShk[k]
}

// MargValue returns end-of-period marginal value
//
//	DiscFacEff * Rfree * PermGroFac^-ρ * Σ p ψ^-ρ vPNext(m')
//
// at every point of a.
func (e Expectation) MargValue(a []float64, vPNext interp.Func) []float64 {
	rho := e.U.Rho()
	scale := e.DiscFacEff * e.Rfree * math.Pow(e.PermGroFac, -rho)
	out := make([]float64, len(a))
	for i, ai := range a {
		s := 0.0
		for k, p := range e.Dstn.Prob {
			if p == 0 {
				continue
			}
			s += p * math.Pow(e.Dstn.PermShk[k], -rho) * vPNext.Eval(e.mNext(ai, k))
		}
		out[i] = scale * s
	}

	return out
}

// MargMargValue returns the derivative of MargValue with respect to a:
//
//	DiscFacEff * Rfree² * PermGroFac^(-ρ-1) * Σ p ψ^(-ρ-1) vPPNext(m').
func (e Expectation) MargMargValue(a []float64, vPPNext interp.Func) []float64 {
	rho := e.U.Rho()
	scale := e.DiscFacEff * e.Rfree * e.Rfree * math.Pow(e.PermGroFac, -rho-1)
	out := make([]float64, len(a))
	for i, ai := range a {
		s := 0.0
		for k, p := range e.Dstn.Prob {
			if p == 0 {
				continue
			}
			s += p * math.Pow(e.Dstn.PermShk[k], -rho-1) * vPPNext.Eval(e.mNext(ai, k))
		}
		out[i] = scale * s
	}

	return out
}

// Value returns end-of-period value
//
//	DiscFacEff * Σ p (ψ G)^(1-ρ) vNext(m').
func (e Expectation) Value(a []float64, vNext interp.Func) []float64 {
	rho := e.U.Rho()
	out := make([]float64, len(a))
	for i, ai := range a {
		s := 0.0
		for k, p := range e.Dstn.Prob {
			if p == 0 {
				continue
			}
			s += p * math.Pow(e.Dstn.PermShk[k]*e.PermGroFac, 1-rho) * vNext.Eval(e.mNext(ai, k))
		}
		out[i] = e.DiscFacEff * s
	}

	return out
}
