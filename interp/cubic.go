// SPDX-License-Identifier: MIT

package interp

import "math"

// Cubic is a piecewise cubic Hermite interpolant defined by values and slopes
// at each knot. It is C1 and reproduces the given slopes exactly.
type Cubic struct {
	x, y, dydx []float64
	lower      bool
	upper      decay
}

var _ Func = (*Cubic)(nil)

// NewCubic builds a cubic Hermite interpolant through (x[i], y[i]) with
// slopes dydx[i]. The slices are copied.
// Errors: ErrTooFewPoints, ErrLengthMismatch, ErrNotIncreasing.
func NewCubic(x, y, dydx []float64, opts ...Option) (*Cubic, error) {
	if err := checkKnots("NewCubic", x, y, dydx); err != nil {
		return nil, err
	}
	o := gatherOptions(opts)
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	ds := append([]float64(nil), dydx...)
	n := len(xs)

	return &Cubic{
		x:     xs,
		y:     ys,
		dydx:  ds,
		lower: o.lowerExtrap,
		upper: newDecay(o, xs[n-1], ys[n-1], ds[n-1]),
	}, nil
}

// Eval returns the interpolated value at v.
func (c *Cubic) Eval(v float64) float64 {
	n := len(c.x)
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case v < c.x[0]:
		if !c.lower {
			return math.NaN()
		}
		return c.y[0] + c.dydx[0]*(v-c.x[0])
	case v > c.x[n-1]:
		return c.upper.eval(v)
	}
	i := segment(c.x, v)
	h := c.x[i+1] - c.x[i]
	t := (v - c.x[i]) / h
	t2, t3 := t*t, t*t*t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*c.y[i] + h10*h*c.dydx[i] + h01*c.y[i+1] + h11*h*c.dydx[i+1]
}

// Derivative returns the slope at v.
func (c *Cubic) Derivative(v float64) float64 {
	n := len(c.x)
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case v < c.x[0]:
		if !c.lower {
			return math.NaN()
		}
		return c.dydx[0]
	case v > c.x[n-1]:
		return c.upper.derivative(v)
	}
	i := segment(c.x, v)
	h := c.x[i+1] - c.x[i]
	t := (v - c.x[i]) / h
	t2 := t * t
	d00 := 6*t2 - 6*t
	d10 := 3*t2 - 4*t + 1
	d01 := -6*t2 + 6*t
	d11 := 3*t2 - 2*t

	return (d00*c.y[i]+d01*c.y[i+1])/h + d10*c.dydx[i] + d11*c.dydx[i+1]
}
