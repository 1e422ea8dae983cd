// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/utility"
)

// NaturalBorrowingConstraint returns the lowest end-of-period assets from
// which next-period resources stay at or above mNrmMinNext after the worst
// income event of dstn. See NaturalConstraint.
func NaturalBorrowingConstraint(dstn income.Distribution, mNrmMinNext, rfree, permGroFac float64) float64 {
	return NaturalConstraint(mNrmMinNext, dstn.MinTranShk(), dstn.MinPermShk(), dstn.MaxPermShk(), rfree, permGroFac)
}

// NaturalConstraint is the worst-case asset level
//
//	(mNrmMinNext - tranShkMin) * permGroFac * ψ / rfree,
//
// with ψ = permShkMin when mNrmMinNext <= tranShkMin and ψ = permShkMax
// otherwise. Next-period resources R·a/(G·ψ) + θ stay at or above
// mNrmMinNext for every a above it.
func NaturalConstraint(mNrmMinNext, tranShkMin, permShkMin, permShkMax, rfree, permGroFac float64) float64 {
	gap := mNrmMinNext - tranShkMin
	psi := permShkMin
	if gap > 0 {
		psi = permShkMax
	}

	return gap * permGroFac * psi / rfree
}

// AssetGrid returns base + aXtra[k] for every k.
func AssetGrid(base float64, aXtra []float64) []float64 {
	a := make([]float64, len(aXtra))
	for k, x := range aXtra {
		a[k] = base + x
	}

	return a
}

// MarginalValueInterp decurves end-of-period marginal value with u'⁻¹,
// interpolates it over a (extrapolating below the grid), and recurves it.
// When vPP is non-nil a cubic interpolant with slopes vPP·(u'⁻¹)'(vP) is used.
func MarginalValueInterp(u utility.CRRA, a, vP, vPP []float64) (MargValueFunc, error) {
	nvrs := make([]float64, len(vP))
	for k, v := range vP {
		nvrs[k] = u.PInv(v)
	}
	var (
		f   interp.Func
		err error
	)
	if vPP == nil {
		f, err = interp.NewLinear(a, nvrs, interp.WithLowerExtrap())
	} else {
		slope := make([]float64, len(vP))
		for k := range vP {
			slope[k] = vPP[k] * u.PInvP(vP[k])
		}
		f, err = interp.NewCubic(a, nvrs, slope, interp.WithLowerExtrap())
	}
	if err != nil {
		return MargValueFunc{}, fmt.Errorf("marginal value interpolation: %w", err)
	}

	return MargValueFunc{CFunc: f, U: u}, nil
}

// ValueInterp decurves end-of-period value with u⁻¹ and builds a cubic
// interpolant whose slopes follow from vP. A point (lower, 0) is prepended so
// that the pseudo-inverse value reaches zero at the natural constraint.
func ValueInterp(u utility.CRRA, lower float64, a, v, vP []float64) (ValueFunc, error) {
	n := len(a)
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	ds := make([]float64, n+1)
	xs[0] = lower
	for k := 0; k < n; k++ {
		xs[k+1] = a[k]
		ys[k+1] = u.Inv(v[k])
		ds[k+1] = vP[k] * u.InvP(v[k])
	}
	ds[0] = ds[1]
	f, err := interp.NewCubic(xs, ys, ds)
	if err != nil {
		return ValueFunc{}, fmt.Errorf("value interpolation: %w", err)
	}

	return ValueFunc{VNvrs: f, U: u}, nil
}

// InvertEndOfPrd applies the endogenous grid step: consumption solves the
// first-order condition u'(c) = vP(a) in closed form, and m = a + c.
func InvertEndOfPrd(u utility.CRRA, a, vP []float64) (c, m []float64) {
	c = make([]float64, len(a))
	m = make([]float64, len(a))
	for k := range a {
		c[k] = u.PInv(vP[k])
		m[k] = a[k] + c[k]
	}

	return c, m
}

// Bounds holds human wealth and the bounding MPCs of one state.
type Bounds struct {
	HNrm      float64
	MPCMin    float64
	MPCMax    float64 // unconstrained MPC at the natural constraint
	MPCMaxEff float64 // 1 when an artificial constraint binds, else MPCMax
}

// ConsumptionFunc builds the unconstrained consumption function from the
// endogenous grid (c, m), anchored by the point (lower, 0). Above the grid the
// function approaches MPCMin·(HNrm + m). With vPP non-nil the cubic version is
// built, using MPCs dcda/(1+dcda) with dcda = vPP/u''(c), and b.MPCMax at the
// anchor.
func ConsumptionFunc(u utility.CRRA, lower float64, c, m, vPP []float64, b Bounds) (interp.Func, error) {
	n := len(c)
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	xs[0] = lower
	copy(xs[1:], m)
	copy(ys[1:], c)

	var opts []interp.Option
	intercept := b.MPCMin * b.HNrm
	if !math.IsNaN(intercept) && !math.IsInf(intercept, 0) {
		opts = append(opts, interp.WithLimit(intercept, b.MPCMin))
	}

	if vPP == nil {
		f, err := interp.NewLinear(xs, ys, opts...)
		if err != nil {
			return nil, fmt.Errorf("consumption function: %w", err)
		}
		return f, nil
	}

	mpc := make([]float64, n+1)
	mpc[0] = b.MPCMax
	for k := 0; k < n; k++ {
		dcda := vPP[k] / u.PP(c[k])
		mpc[k+1] = dcda / (dcda + 1)
	}
	f, err := interp.NewCubic(xs, ys, mpc, opts...)
	if err != nil {
		return nil, fmt.Errorf("consumption function: %w", err)
	}

	return f, nil
}

// Policy merges the unconstrained consumption function with the constrained
// branch at mNrmMin and returns the consumption and marginal value functions,
// plus the marginal-marginal value function when withVPP is set.
func Policy(u utility.CRRA, unconstrained interp.Func, mNrmMin float64, withVPP bool) (cFunc, vPFunc, vPPFunc interp.Func) {
	cFunc = interp.LowerEnvelope(unconstrained, Constrained{MNrmMin: mNrmMin})
	vPFunc = MargValueFunc{CFunc: cFunc, U: u}
	if withVPP {
		vPPFunc = MargMargValueFunc{CFunc: cFunc, U: u}
	}

	return cFunc, vPFunc, vPPFunc
}

// ValueFuncFromPolicy builds the value function on m = mNrmMin + aXtra:
// v(m) = u(c(m)) + endOfPrdV(m - c(m)). The pseudo-inverse value is
// interpolated cubically, anchored at (mNrmMin, 0) with slope
// MPCMaxEff^(-ρ/(1-ρ)), and approaches MPCMinNvrs·(HNrm + m) above the grid,
// where MPCMinNvrs = MPCMin^(-ρ/(1-ρ)).
func ValueFuncFromPolicy(u utility.CRRA, mNrmMin float64, aXtra []float64, cFunc interp.Func,
	endOfPrdV func(a float64) float64, b Bounds) (ValueFunc, error) {
	rho := u.Rho()
	n := len(aXtra)
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	ds := make([]float64, n+1)
	xs[0] = mNrmMin
	ds[0] = math.Pow(b.MPCMaxEff, -rho/(1-rho))
	for k, x := range aXtra {
		m := mNrmMin + x
		c := cFunc.Eval(m)
		v := u.U(c) + endOfPrdV(m-c)
		xs[k+1] = m
		ys[k+1] = u.Inv(v)
		ds[k+1] = u.P(c) * u.InvP(v)
	}
	nvrsMPC := math.Pow(b.MPCMin, -rho/(1-rho))
	var opts []interp.Option
	if lim := nvrsMPC * b.HNrm; !math.IsNaN(lim) && !math.IsInf(lim, 0) && !math.IsInf(nvrsMPC, 0) {
		opts = append(opts, interp.WithLimit(lim, nvrsMPC))
	}
	f, err := interp.NewCubic(xs, ys, ds, opts...)
	if err != nil {
		return ValueFunc{}, fmt.Errorf("value function: %w", err)
	}

	return ValueFunc{VNvrs: f, U: u}, nil
}
