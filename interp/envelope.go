// SPDX-License-Identifier: MIT

package interp

import "math"

// Envelope is the pointwise minimum of its branches, ignoring branches that
// evaluate to NaN. Its derivative is the derivative of the minimizing branch.
type Envelope struct {
	branches []Func
}

var _ Func = (*Envelope)(nil)

// LowerEnvelope combines fs into their pointwise minimum. Evaluating where
// every branch is NaN yields NaN.
func LowerEnvelope(fs ...Func) *Envelope {
	return &Envelope{branches: append([]Func(nil), fs...)}
}

// argmin returns the index of the smallest non-NaN branch value at x, or -1.
func (e *Envelope) argmin(x float64) (int, float64) {
	best, bestV := -1, math.NaN()
	for i, f := range e.branches {
		v := f.Eval(x)
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v < bestV {
			best, bestV = i, v
		}
	}

	return best, bestV
}

// Eval returns the minimum over branches at x.
func (e *Envelope) Eval(x float64) float64 {
	_, v := e.argmin(x)

	return v
}

// Derivative returns the slope of the branch that attains the minimum at x.
func (e *Envelope) Derivative(x float64) float64 {
	i, _ := e.argmin(x)
	if i < 0 {
		return math.NaN()
	}

	return e.branches[i].Derivative(x)
}
