// SPDX-License-Identifier: MIT

// Package interp provides one-dimensional interpolants for policy and value
// functions: piecewise linear, cubic Hermite (values plus slopes), and the
// pointwise lower envelope of several functions.
//
// Extrapolation policy:
//   - Below the first knot: NaN unless WithLowerExtrap is given, in which case
//     the first segment (linear) or the first slope (cubic) is extended.
//   - Above the last knot: the last segment/slope is extended linearly, unless
//     WithLimit supplies an asymptote. Then the function decays exponentially
//     from the last knot toward the line intercept + slope*x, matching both the
//     level and the slope at the knot.
//
// AI-Hints:
//   - NaN below the grid is deliberate: LowerEnvelope ignores NaN branches, so
//     an unconstrained policy defined only above its natural limit combines
//     cleanly with a constrained one.
package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sentinel errors.
var (
	// ErrTooFewPoints is returned when fewer than two knots are supplied.
	ErrTooFewPoints = errors.New("interp: at least two points are required")

	// ErrLengthMismatch is returned when knot slices have different lengths.
	ErrLengthMismatch = errors.New("interp: input slices differ in length")

	// ErrNotIncreasing is returned when abscissae are not strictly increasing
	// (this includes NaN abscissae).
	ErrNotIncreasing = errors.New("interp: abscissae must be strictly increasing")
)

// Func is a differentiable function of one variable.
type Func interface {
	Eval(x float64) float64
	Derivative(x float64) float64
}

// Option configures extrapolation behaviour.
type Option func(*options)

type options struct {
	lowerExtrap bool
	hasLimit    bool
	intercept   float64
	slope       float64
}

// WithLowerExtrap enables extrapolation below the first knot.
func WithLowerExtrap() Option {
	return func(o *options) { o.lowerExtrap = true }
}

// WithLimit sets the asymptote intercept + slope*x approached above the last
// knot. It panics on non-finite arguments.
func WithLimit(intercept, slope float64) Option {
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) || math.IsNaN(slope) || math.IsInf(slope, 0) {
		panic(fmt.Sprintf("interp: WithLimit(%g, %g): limit must be finite", intercept, slope))
	}
	return func(o *options) {
		o.hasLimit = true
		o.intercept = intercept
		o.slope = slope
	}
}

func gatherOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// checkKnots validates lengths and strict monotonicity of x.
func checkKnots(op string, x []float64, others ...[]float64) error {
	if len(x) < 2 {
		return fmt.Errorf("%s: %w", op, ErrTooFewPoints)
	}
	for _, o := range others {
		if len(o) != len(x) {
			return fmt.Errorf("%s: %w", op, ErrLengthMismatch)
		}
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("%s: x[%d]=%g after x[%d]=%g: %w", op, i, x[i], i-1, x[i-1], ErrNotIncreasing)
		}
	}

	return nil
}

// segment returns the index i of the interval [x[i], x[i+1]] holding v,
// clamped to [0, n-2]. Knot values map onto the left end of the interval that
// starts at them, except the last knot which maps onto the final interval.
func segment(x []float64, v float64) int {
	n := len(x)
	i := sort.Search(n, func(j int) bool { return x[j] > v }) - 1
	if i < 0 {
		return 0
	}
	if i > n-2 {
		return n - 2
	}

	return i
}

// decay holds the exponential approach toward a limiting line.
type decay struct {
	active    bool
	intercept float64
	slope     float64
	xTop      float64
	yTop      float64
	slopeTop  float64
	a, b      float64
}

func newDecay(o options, xTop, yTop, slopeTop float64) decay {
	d := decay{xTop: xTop, yTop: yTop, slopeTop: slopeTop}
	if !o.hasLimit {
		return d
	}
	d.active = true
	d.intercept, d.slope = o.intercept, o.slope
	d.a = o.intercept + o.slope*xTop - yTop
	if d.a == 0 {
		return d
	}
	d.b = -(o.slope - slopeTop) / d.a
	if !(d.b > 0) || math.IsInf(d.b, 0) {
		// No well-behaved approach from this side; extend the last slope.
		d.active = false
	}

	return d
}

func (d decay) eval(x float64) float64 {
	if !d.active {
		return d.yTop + d.slopeTop*(x-d.xTop)
	}
	if d.a == 0 {
		return d.intercept + d.slope*x
	}

	return d.intercept + d.slope*x - d.a*math.Exp(-d.b*(x-d.xTop))
}

func (d decay) derivative(x float64) float64 {
	if !d.active {
		return d.slopeTop
	}
	if d.a == 0 {
		return d.slope
	}

	return d.slope + d.a*d.b*math.Exp(-d.b*(x-d.xTop))
}
