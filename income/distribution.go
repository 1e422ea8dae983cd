// SPDX-License-Identifier: MIT

// Package income describes discrete joint distributions of permanent and
// transitory income shocks and constructs them from lognormal parameters.
//
// A Distribution is a set of equally indexed events: event k happens with
// probability Prob[k] and brings permanent shock PermShk[k] (which scales
// permanent income) and transitory shock TranShk[k] (income relative to
// permanent income).
package income

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ProbTol is the tolerance on the sum of event probabilities.
const ProbTol = 1e-9

// Sentinel errors.
var (
	// ErrEmpty is returned for a distribution with no events.
	ErrEmpty = errors.New("income: distribution has no events")

	// ErrLengthMismatch is returned when Prob, PermShk and TranShk differ in length.
	ErrLengthMismatch = errors.New("income: event slices differ in length")

	// ErrInvalidProb is returned for negative probabilities or a total different from one.
	ErrInvalidProb = errors.New("income: probabilities must be non-negative and sum to one")

	// ErrInvalidShock is returned for non-positive permanent or negative transitory shocks.
	ErrInvalidShock = errors.New("income: permanent shocks must be > 0 and transitory shocks >= 0")

	// ErrInvalidParams is returned by constructors for out-of-domain parameters.
	ErrInvalidParams = errors.New("income: invalid discretisation parameters")
)

// Distribution is a discrete joint distribution of income shocks.
type Distribution struct {
	Prob    []float64 `yaml:"prob"`
	PermShk []float64 `yaml:"perm_shk"`
	TranShk []float64 `yaml:"tran_shk"`
}

// Len returns the number of events.
func (d Distribution) Len() int { return len(d.Prob) }

// Validate checks shape, probabilities and shock domains.
func (d Distribution) Validate() error {
	n := len(d.Prob)
	if n == 0 {
		return ErrEmpty
	}
	if len(d.PermShk) != n || len(d.TranShk) != n {
		return fmt.Errorf("prob=%d perm=%d tran=%d: %w", n, len(d.PermShk), len(d.TranShk), ErrLengthMismatch)
	}
	for k := 0; k < n; k++ {
		if !(d.Prob[k] >= 0) || math.IsInf(d.Prob[k], 0) {
			return fmt.Errorf("event %d prob=%g: %w", k, d.Prob[k], ErrInvalidProb)
		}
		if !(d.PermShk[k] > 0) || math.IsInf(d.PermShk[k], 0) {
			return fmt.Errorf("event %d perm=%g: %w", k, d.PermShk[k], ErrInvalidShock)
		}
		if !(d.TranShk[k] >= 0) || math.IsInf(d.TranShk[k], 0) {
			return fmt.Errorf("event %d tran=%g: %w", k, d.TranShk[k], ErrInvalidShock)
		}
	}
	if s := floats.Sum(d.Prob); math.Abs(s-1) > ProbTol {
		return fmt.Errorf("sum=%g: %w", s, ErrInvalidProb)
	}

	return nil
}

// MinPermShk returns the smallest permanent shock.
func (d Distribution) MinPermShk() float64 { return floats.Min(d.PermShk) }

// MaxPermShk returns the largest permanent shock.
func (d Distribution) MaxPermShk() float64 { return floats.Max(d.PermShk) }

// MinTranShk returns the smallest transitory shock.
func (d Distribution) MinTranShk() float64 { return floats.Min(d.TranShk) }

// ExpectedIncome returns E[PermShk * TranShk].
func (d Distribution) ExpectedIncome() float64 {
	inc := make([]float64, d.Len())
	floats.MulTo(inc, d.PermShk, d.TranShk)

	return floats.Dot(d.Prob, inc)
}

// WorstIncPrb returns the total probability of the events whose income
// PermShk*TranShk equals the worst possible income MinPermShk*MinTranShk.
func (d Distribution) WorstIncPrb() float64 {
	worst := d.MinPermShk() * d.MinTranShk()
	p := 0.0
	for k := range d.Prob {
		if d.PermShk[k]*d.TranShk[k] == worst {
			p += d.Prob[k]
		}
	}

	return p
}

// Mean returns the probability-weighted means of the permanent and
// transitory shocks.
func (d Distribution) Mean() (perm, tran float64) {
	return floats.Dot(d.Prob, d.PermShk), floats.Dot(d.Prob, d.TranShk)
}

// Clone returns a deep copy.
func (d Distribution) Clone() Distribution {
	return Distribution{
		Prob:    append([]float64(nil), d.Prob...),
		PermShk: append([]float64(nil), d.PermShk...),
		TranShk: append([]float64(nil), d.TranShk...),
	}
}
