// SPDX-License-Identifier: MIT

// Package utility implements constant-relative-risk-aversion (CRRA) utility,
// its first two derivatives, and the inverses used by the endogenous grid
// method to "decurve" value and marginal value before interpolation.
//
// All methods are pure and safe for concurrent use. A coefficient of exactly
// one selects logarithmic utility.
package utility

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRho is returned by NewCRRA when the coefficient is not a finite
// positive number.
var ErrInvalidRho = errors.New("utility: relative risk aversion must be finite and > 0")

// CRRA is the utility function u(c) = c^(1-ρ)/(1-ρ), or log(c) when ρ == 1.
type CRRA struct {
	rho float64
}

// NewCRRA validates rho and returns the kernel.
func NewCRRA(rho float64) (CRRA, error) {
	if math.IsNaN(rho) || math.IsInf(rho, 0) || rho <= 0 {
		return CRRA{}, fmt.Errorf("NewCRRA(%g): %w", rho, ErrInvalidRho)
	}

	return CRRA{rho: rho}, nil
}

// Rho returns the coefficient of relative risk aversion.
func (u CRRA) Rho() float64 { return u.rho }

// IsLog reports whether the kernel is logarithmic utility.
func (u CRRA) IsLog() bool { return u.rho == 1 }

// U returns utility u(c).
func (u CRRA) U(c float64) float64 {
	if u.IsLog() {
		return math.Log(c)
	}

	return math.Pow(c, 1-u.rho) / (1 - u.rho)
}

// P returns marginal utility u'(c) = c^-ρ.
func (u CRRA) P(c float64) float64 {
	return math.Pow(c, -u.rho)
}

// PP returns u''(c) = -ρ c^(-ρ-1).
func (u CRRA) PP(c float64) float64 {
	return -u.rho * math.Pow(c, -u.rho-1)
}

// Inv returns c such that u(c) == v.
func (u CRRA) Inv(v float64) float64 {
	if u.IsLog() {
		return math.Exp(v)
	}

	return math.Pow((1-u.rho)*v, 1/(1-u.rho))
}

// PInv returns c such that u'(c) == vP.
func (u CRRA) PInv(vP float64) float64 {
	return math.Pow(vP, -1/u.rho)
}

// InvP returns the derivative of Inv at v.
func (u CRRA) InvP(v float64) float64 {
	if u.IsLog() {
		return math.Exp(v)
	}

	return math.Pow((1-u.rho)*v, u.rho/(1-u.rho))
}

// PInvP returns the derivative of PInv at vP.
func (u CRRA) PInvP(vP float64) float64 {
	return (-1 / u.rho) * math.Pow(vP, -1/u.rho-1)
}
