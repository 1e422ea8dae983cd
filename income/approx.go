// SPDX-License-Identifier: MIT

package income

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Univariate is a discrete distribution of a single shock.
type Univariate struct {
	Prob []float64
	X    []float64
}

// ApproxMeanOneLognormal discretises a lognormal with mean one and standard
// deviation sigma of its log into n equiprobable points. Each point is the
// conditional mean of its probability bin, so the discrete mean is exactly one.
// sigma == 0 yields n points at 1.
// Errors: ErrInvalidParams when n < 1 or sigma < 0.
func ApproxMeanOneLognormal(n int, sigma float64) (Univariate, error) {
	if n < 1 || !(sigma >= 0) || math.IsInf(sigma, 0) {
		return Univariate{}, fmt.Errorf("ApproxMeanOneLognormal(%d, %g): %w", n, sigma, ErrInvalidParams)
	}
	out := Univariate{Prob: make([]float64, n), X: make([]float64, n)}
	for i := range out.Prob {
		out.Prob[i] = 1 / float64(n)
		out.X[i] = 1
	}
	if sigma == 0 || n == 1 {
		return out, nil
	}
	// Bin edges are normal quantiles z_i = Φ⁻¹(i/n); with mu = -σ²/2 the
	// conditional mean of bin i is n·(Φ(z_{i+1}-σ) - Φ(z_i-σ)).
	norm := distuv.UnitNormal
	lo := norm.CDF(math.Inf(-1))
	for i := 0; i < n; i++ {
		var hi float64
		if i == n-1 {
			hi = 1
		} else {
			hi = norm.CDF(norm.Quantile(float64(i+1)/float64(n)) - sigma)
		}
		out.X[i] = (hi - lo) * float64(n)
		lo = hi
	}

	return out, nil
}

// AddDiscreteOutcomeConstantMean adds an outcome x with probability p to d and
// rescales the other outcomes so that the mean is unchanged. It is used to add
// an unemployment state to a transitory shock distribution.
// Errors: ErrInvalidParams when p is outside [0,1) or x < 0.
func AddDiscreteOutcomeConstantMean(d Univariate, x, p float64) (Univariate, error) {
	if !(p >= 0 && p < 1) || !(x >= 0) {
		return Univariate{}, fmt.Errorf("AddDiscreteOutcomeConstantMean(x=%g, p=%g): %w", x, p, ErrInvalidParams)
	}
	out := Univariate{
		Prob: make([]float64, 0, len(d.Prob)+1),
		X:    make([]float64, 0, len(d.X)+1),
	}
	out.Prob = append(out.Prob, p)
	out.X = append(out.X, x)
	scale := (1 - p*x) / (1 - p)
	for i := range d.Prob {
		out.Prob = append(out.Prob, d.Prob[i]*(1-p))
		out.X = append(out.X, d.X[i]*scale)
	}

	return out, nil
}

// CombineIndep builds the joint distribution of independent permanent and
// transitory shocks. Events are ordered permanent-major.
func CombineIndep(perm, tran Univariate) Distribution {
	n := len(perm.Prob) * len(tran.Prob)
	d := Distribution{
		Prob:    make([]float64, 0, n),
		PermShk: make([]float64, 0, n),
		TranShk: make([]float64, 0, n),
	}
	for i := range perm.Prob {
		for j := range tran.Prob {
			d.Prob = append(d.Prob, perm.Prob[i]*tran.Prob[j])
			d.PermShk = append(d.PermShk, perm.X[i])
			d.TranShk = append(d.TranShk, tran.X[j])
		}
	}

	return d
}

// Params describes a lognormal income process with an optional unemployment
// outcome.
type Params struct {
	PermShkStd   float64 `yaml:"perm_shk_std"`
	PermShkCount int     `yaml:"perm_shk_count"`
	TranShkStd   float64 `yaml:"tran_shk_std"`
	TranShkCount int     `yaml:"tran_shk_count"`
	UnempPrb     float64 `yaml:"unemp_prb"`
	IncUnemp     float64 `yaml:"inc_unemp"`
}

// Construct discretises p into a joint shock distribution.
func Construct(p Params) (Distribution, error) {
	perm, err := ApproxMeanOneLognormal(p.PermShkCount, p.PermShkStd)
	if err != nil {
		return Distribution{}, fmt.Errorf("permanent: %w", err)
	}
	tran, err := ApproxMeanOneLognormal(p.TranShkCount, p.TranShkStd)
	if err != nil {
		return Distribution{}, fmt.Errorf("transitory: %w", err)
	}
	if p.UnempPrb > 0 {
		if tran, err = AddDiscreteOutcomeConstantMean(tran, p.IncUnemp, p.UnempPrb); err != nil {
			return Distribution{}, fmt.Errorf("unemployment: %w", err)
		}
	}

	return CombineIndep(perm, tran), nil
}

// Degenerate returns the single-event distribution (1, perm, tran).
func Degenerate(perm, tran float64) Distribution {
	return Distribution{Prob: []float64{1}, PermShk: []float64{perm}, TranShk: []float64{tran}}
}
