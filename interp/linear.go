// SPDX-License-Identifier: MIT

package interp

import "math"

// Linear is a piecewise linear interpolant.
type Linear struct {
	x, y  []float64
	lower bool
	upper decay
}

var _ Func = (*Linear)(nil)

// NewLinear builds a piecewise linear interpolant through (x[i], y[i]).
// The slices are copied.
// Errors: ErrTooFewPoints, ErrLengthMismatch, ErrNotIncreasing.
func NewLinear(x, y []float64, opts ...Option) (*Linear, error) {
	if err := checkKnots("NewLinear", x, y); err != nil {
		return nil, err
	}
	o := gatherOptions(opts)
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	n := len(xs)
	topSlope := (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])

	return &Linear{
		x:     xs,
		y:     ys,
		lower: o.lowerExtrap,
		upper: newDecay(o, xs[n-1], ys[n-1], topSlope),
	}, nil
}

// Eval returns the interpolated value at v.
func (l *Linear) Eval(v float64) float64 {
	n := len(l.x)
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case v < l.x[0] && !l.lower:
		return math.NaN()
	case v > l.x[n-1]:
		return l.upper.eval(v)
	}
	i := segment(l.x, v)
	t := (v - l.x[i]) / (l.x[i+1] - l.x[i])

	return l.y[i] + t*(l.y[i+1]-l.y[i])
}

// Derivative returns the slope at v. At an interior knot the slope of the
// interval to the right is returned.
func (l *Linear) Derivative(v float64) float64 {
	n := len(l.x)
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case v < l.x[0] && !l.lower:
		return math.NaN()
	case v > l.x[n-1]:
		return l.upper.derivative(v)
	}
	i := segment(l.x, v)

	return (l.y[i+1] - l.y[i]) / (l.x[i+1] - l.x[i])
}

// Knots returns copies of the abscissae and ordinates.
func (l *Linear) Knots() ([]float64, []float64) {
	return append([]float64(nil), l.x...), append([]float64(nil), l.y...)
}
