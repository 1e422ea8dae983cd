// SPDX-License-Identifier: MIT

package egm_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRho     = 2.0
	testDiscFac = 0.96
	testRfree   = 1.03
)

func testGrid(t *testing.T) []float64 {
	t.Helper()
	g, err := egm.AssetsAboveMinimum(0.001, 20, 48, 3, nil)
	require.NoError(t, err)

	return g
}

func baseInputs(t *testing.T) egm.Inputs {
	t.Helper()
	return egm.Inputs{
		IncomeDstn: income.Degenerate(1, 1),
		LivPrb:     1,
		DiscFac:    testDiscFac,
		CRRA:       testRho,
		Rfree:      testRfree,
		PermGroFac: 1,
		AXtraGrid:  testGrid(t),
	}
}

// twoPeriodC is consumption in the second-to-last period with certain income
// of one in both periods and no artificial constraint.
func twoPeriodC(m float64) float64 {
	kappa := 1 / (1 + math.Pow(testDiscFac*testRfree, 1/testRho)/testRfree)
	return kappa * (m + 1/testRfree)
}

func terminal(t *testing.T) egm.Solution {
	t.Helper()
	u, err := utility.NewCRRA(testRho)
	require.NoError(t, err)

	return egm.Terminal(u)
}

// TestTerminal verifies the consume-everything solution.
func TestTerminal(t *testing.T) {
	s := terminal(t)
	for _, m := range []float64{0.5, 1, 7} {
		assert.InDelta(t, m, s.CFunc.Eval(m), 1e-15)
		assert.InDelta(t, math.Pow(m, -testRho), s.VPFunc.Eval(m), 1e-12)
		assert.InDelta(t, -1/m, s.VFunc.Eval(m), 1e-12)
		assert.InDelta(t, -testRho*math.Pow(m, -testRho-1), s.VPPFunc.Eval(m), 1e-12)
	}
	assert.Equal(t, 1.0, s.MPCMin)
	assert.Equal(t, 1.0, s.MPCMax)
}

// TestSolveOnePeriodClosedForm compares the linear and cubic solutions with
// the closed-form two-period consumption rule, including extrapolation above
// the grid.
func TestSolveOnePeriodClosedForm(t *testing.T) {
	for _, cubic := range []bool{false, true} {
		in := baseInputs(t)
		in.Cubic = cubic
		s, err := egm.SolveOnePeriod(terminal(t), in)
		require.NoError(t, err)

		assert.InDelta(t, -1/testRfree, s.BoroCnstNat, 1e-15)
		assert.InDelta(t, -1/testRfree, s.MNrmMin, 1e-15)
		assert.InDelta(t, 1/testRfree, s.HNrm, 1e-15)
		assert.InDelta(t, s.MPCMin, s.MPCMax, 1e-12)
		for _, m := range []float64{-0.5, 0, 0.7, 3, 15, 60} {
			assert.InDelta(t, twoPeriodC(m), s.CFunc.Eval(m), 1e-9, "cubic=%v m=%g", cubic, m)
		}
		if cubic {
			require.NotNil(t, s.VPPFunc)
		} else {
			assert.Nil(t, s.VPPFunc)
		}
	}
}

// TestSolveOnePeriodArtificialConstraint verifies that an artificial
// constraint caps consumption at resources above it and forces MPCMax to one.
func TestSolveOnePeriodArtificialConstraint(t *testing.T) {
	in := baseInputs(t)
	zero := 0.0
	in.BoroCnstArt = &zero
	s, err := egm.SolveOnePeriod(terminal(t), in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.MNrmMin)
	assert.Equal(t, 1.0, s.MPCMax)
	assert.InDelta(t, 0.1, s.CFunc.Eval(0.1), 1e-12)
	assert.InDelta(t, 1.0, s.CFunc.Derivative(0.1), 1e-12)
	assert.InDelta(t, twoPeriodC(3), s.CFunc.Eval(3), 1e-9)
	assert.Equal(t, 0.0, s.CFunc.Eval(-0.2))
}

// TestSolveOnePeriodValue compares the value function with the closed form
// u(c0) + β u(c1).
func TestSolveOnePeriodValue(t *testing.T) {
	in := baseInputs(t)
	in.VFunc = true
	s, err := egm.SolveOnePeriod(terminal(t), in)
	require.NoError(t, err)
	require.NotNil(t, s.VFunc)

	u, _ := utility.NewCRRA(testRho)
	for _, m := range []float64{0.5, 1, 2, 4, 10} {
		c0 := twoPeriodC(m)
		c1 := testRfree*(m-c0) + 1
		want := u.U(c0) + testDiscFac*u.U(c1)
		assert.InEpsilon(t, want, s.VFunc.Eval(m), 1e-8, "m=%g", m)
		assert.InEpsilon(t, u.P(c0), s.VFunc.Derivative(m), 1e-6, "m=%g", m)
	}
}

// TestSolveOnePeriodRiskyBounds checks MPC bounds and monotonicity under
// lognormal income risk with unemployment.
func TestSolveOnePeriodRiskyBounds(t *testing.T) {
	d, err := income.Construct(income.Params{
		PermShkStd: 0.1, PermShkCount: 7, TranShkStd: 0.1, TranShkCount: 7,
		UnempPrb: 0.05, IncUnemp: 0.3,
	})
	require.NoError(t, err)
	in := baseInputs(t)
	in.IncomeDstn = d
	in.LivPrb = 0.98
	in.PermGroFac = 1.01
	zero := 0.0
	in.BoroCnstArt = &zero

	s := terminal(t)
	for k := 0; k < 5; k++ {
		s, err = egm.SolveOnePeriod(s, in)
		require.NoError(t, err)
	}
	assert.Greater(t, s.MPCMin, 0.0)
	assert.LessOrEqual(t, s.MPCMin, 1.0)
	assert.Equal(t, 1.0, s.MPCMax)

	prev := s.CFunc.Eval(s.MNrmMin)
	for m := s.MNrmMin + 0.05; m < 30; m += 0.05 {
		c := s.CFunc.Eval(m)
		assert.Greater(t, c, prev, "m=%g", m)
		assert.LessOrEqual(t, c, m-s.MNrmMin+1e-12, "m=%g", m)
		mpc := s.CFunc.Derivative(m)
		assert.Greater(t, mpc, 0.0)
		assert.LessOrEqual(t, mpc, 1.0+1e-9)
		prev = c
	}
}

// infFunc evaluates to +Inf everywhere.
type infFunc struct{}

func (infFunc) Eval(float64) float64       { return math.Inf(1) }
func (infFunc) Derivative(float64) float64 { return math.Inf(1) }

// TestSolveOnePeriodErrors covers validation failures.
func TestSolveOnePeriodErrors(t *testing.T) {
	next := terminal(t)
	cases := []struct {
		name   string
		mutate func(*egm.Inputs, *egm.Solution)
		want   error
	}{
		{"crra", func(in *egm.Inputs, _ *egm.Solution) { in.CRRA = 0 }, egm.ErrInvalidParameter},
		{"grid", func(in *egm.Inputs, _ *egm.Solution) { in.AXtraGrid = nil }, egm.ErrInvalidParameter},
		{"grid single point", func(in *egm.Inputs, _ *egm.Solution) { in.AXtraGrid = []float64{1} }, egm.ErrInvalidParameter},
		{"grid order", func(in *egm.Inputs, _ *egm.Solution) { in.AXtraGrid = []float64{1, 0.5} }, egm.ErrInvalidParameter},
		{"livprb", func(in *egm.Inputs, _ *egm.Solution) { in.LivPrb = 1.2 }, egm.ErrInvalidParameter},
		{"rfree", func(in *egm.Inputs, _ *egm.Solution) { in.Rfree = 0 }, egm.ErrInvalidParameter},
		{"income", func(in *egm.Inputs, _ *egm.Solution) { in.IncomeDstn = income.Degenerate(-1, 1) }, income.ErrInvalidShock},
		{"cubic", func(in *egm.Inputs, s *egm.Solution) { in.Cubic = true; s.VPPFunc = nil }, egm.ErrConfigConflict},
		{"vfunc next", func(in *egm.Inputs, s *egm.Solution) { in.VFunc = true; s.VFunc = nil }, egm.ErrConfigConflict},
		{"vfunc log", func(in *egm.Inputs, _ *egm.Solution) { in.VFunc = true; in.CRRA = 1 }, egm.ErrConfigConflict},
		{"infinite next vP", func(_ *egm.Inputs, s *egm.Solution) { s.VPFunc = infFunc{} }, egm.ErrNumericalDegeneracy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, s := baseInputs(t), next
			tc.mutate(&in, &s)
			_, err := egm.SolveOnePeriod(s, in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNaturalConstraint verifies the worst permanent shock switches from the
// smallest to the largest once next period's limit exceeds the income floor.
func TestNaturalConstraint(t *testing.T) {
	// mNrmMinNext below the floor: ψmin is the worst case.
	assert.InDelta(t, -0.3*0.9/1.5, egm.NaturalConstraint(0, 0.3, 0.9, 1.2, 1.5, 1), 1e-15)
	// mNrmMinNext above the floor: ψmax is the worst case.
	assert.InDelta(t, 0.2*2*1.2/1.5, egm.NaturalConstraint(0.5, 0.3, 0.9, 1.2, 1.5, 2), 1e-15)

	d := income.Distribution{Prob: []float64{0.5, 0.5}, PermShk: []float64{0.9, 1.2}, TranShk: []float64{0.3, 0.3}}
	nat := egm.NaturalBorrowingConstraint(d, 0.5, 1.5, 2)
	for k := range d.Prob {
		mNext := 1.5*nat/(2*d.PermShk[k]) + d.TranShk[k]
		assert.GreaterOrEqual(t, mNext, 0.5-1e-12, "event %d", k)
	}
}

// TestSolveOnePeriodHighArtificialConstraint verifies a solution with the
// artificial limit above the lowest transitory income stays finite.
func TestSolveOnePeriodHighArtificialConstraint(t *testing.T) {
	d, err := income.Construct(income.Params{
		PermShkStd: 0.1, PermShkCount: 5, TranShkStd: 0.1, TranShkCount: 5,
		UnempPrb: 0.05, IncUnemp: 0.3,
	})
	require.NoError(t, err)
	art := 0.5
	in := baseInputs(t)
	in.IncomeDstn, in.BoroCnstArt = d, &art

	s := terminal(t)
	for period := 0; period < 3; period++ {
		s, err = egm.SolveOnePeriod(s, in)
		require.NoError(t, err)
		assert.Equal(t, art, s.MNrmMin)
		if period > 0 {
			assert.Greater(t, s.BoroCnstNat, 0.0)
		}
		for m := s.MNrmMin + 0.01; m < 20; m += 0.29 {
			c := s.CFunc.Eval(m)
			assert.False(t, math.IsNaN(c) || math.IsInf(c, 0), "m=%g", m)
			assert.Greater(t, c, 0.0, "m=%g", m)
			assert.False(t, math.IsInf(s.VPFunc.Eval(m), 0), "m=%g", m)
		}
	}
}

// TestMakeGridExpMult verifies endpoints, length and ordering.
func TestMakeGridExpMult(t *testing.T) {
	for _, nest := range []int{0, 1, 3} {
		g, err := egm.MakeGridExpMult(0.001, 20, 10, nest)
		require.NoError(t, err)
		require.Len(t, g, 10)
		assert.Equal(t, 0.001, g[0])
		assert.Equal(t, 20.0, g[9])
		for k := 1; k < len(g); k++ {
			assert.Greater(t, g[k], g[k-1])
		}
	}
	_, err := egm.MakeGridExpMult(1, 1, 5, 1)
	require.ErrorIs(t, err, egm.ErrInvalidParameter)

	g, err := egm.AssetsAboveMinimum(0.5, 2, 2, 0, []float64{1, 2, -3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 2}, g)
}
