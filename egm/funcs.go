// SPDX-License-Identifier: MIT

package egm

import (
	"math"

	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/utility"
)

// ValueFunc recurves a "pseudo-inverse" value function: v(m) = u(vNvrs(m)).
// Interpolating u⁻¹(v) instead of v keeps the interpolant close to linear.
type ValueFunc struct {
	VNvrs interp.Func
	U     utility.CRRA
}

// Eval returns v(m).
func (f ValueFunc) Eval(m float64) float64 { return f.U.U(f.VNvrs.Eval(m)) }

// Derivative returns v'(m) = u'(vNvrs(m)) * vNvrs'(m).
func (f ValueFunc) Derivative(m float64) float64 {
	return f.U.P(f.VNvrs.Eval(m)) * f.VNvrs.Derivative(m)
}

// MargValueFunc recurves a marginal value function: vP(m) = u'(c(m)), where c
// is either a consumption function or an interpolated u'⁻¹(vP).
type MargValueFunc struct {
	CFunc interp.Func
	U     utility.CRRA
}

// Eval returns vP(m).
func (f MargValueFunc) Eval(m float64) float64 { return f.U.P(f.CFunc.Eval(m)) }

// Derivative returns vPP(m) = u''(c(m)) * c'(m).
func (f MargValueFunc) Derivative(m float64) float64 {
	return f.U.PP(f.CFunc.Eval(m)) * f.CFunc.Derivative(m)
}

// MargMargValueFunc is vPP(m) = c'(m) * u''(c(m)) for a consumption function c.
// Its own derivative is not defined and evaluates to NaN.
type MargMargValueFunc struct {
	CFunc interp.Func
	U     utility.CRRA
}

// Eval returns vPP(m).
func (f MargMargValueFunc) Eval(m float64) float64 {
	return f.CFunc.Derivative(m) * f.U.PP(f.CFunc.Eval(m))
}

// Derivative is not available for a marginal-marginal value function.
func (f MargMargValueFunc) Derivative(float64) float64 { return math.NaN() }

// Constrained is the consumption rule of an agent at the borrowing limit:
// spend everything above MNrmMin, and nothing below it.
type Constrained struct {
	MNrmMin float64
}

// Eval returns max(m - MNrmMin, 0).
func (f Constrained) Eval(m float64) float64 {
	if math.IsNaN(m) {
		return math.NaN()
	}
	if m < f.MNrmMin {
		return 0
	}

	return m - f.MNrmMin
}

// Derivative returns 1 above MNrmMin and 0 below.
func (f Constrained) Derivative(m float64) float64 {
	if math.IsNaN(m) {
		return math.NaN()
	}
	if m < f.MNrmMin {
		return 0
	}

	return 1
}

var (
	_ interp.Func = ValueFunc{}
	_ interp.Func = MargValueFunc{}
	_ interp.Func = MargMargValueFunc{}
	_ interp.Func = Constrained{}
)
