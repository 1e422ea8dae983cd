// SPDX-License-Identifier: MIT

package simulate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/interp"
	"github.com/katalvlaran/consmarkov/markov"
	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/katalvlaran/consmarkov/simulate"
	"github.com/katalvlaran/consmarkov/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func constInts(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func constFloats(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestMarkovHistoryDeterminism(t *testing.T) {
	p := dense(t, [][]float64{{0.9, 0.1}, {0.2, 0.8}})
	init := constInts(500, 0)

	a, err := simulate.MarkovHistory(p, init, 50, 7)
	require.NoError(t, err)
	b, err := simulate.MarkovHistory(p, init, 50, 7)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed, different panels (-first +second):\n%s", diff)
	}

	c, err := simulate.MarkovHistory(p, init, 50, 8)
	require.NoError(t, err)
	assert.NotEmpty(t, cmp.Diff(a, c))
	assert.Equal(t, init, a[0])
}

func TestMarkovHistoryExactFrequencies(t *testing.T) {
	p := dense(t, [][]float64{{0.3, 0.7}, {0.5, 0.5}})
	hist, err := simulate.MarkovHistory(p, constInts(1000, 0), 2, 1)
	require.NoError(t, err)

	freq, err := simulate.StateFrequencies(hist, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, freq[0])
	assert.InDelta(t, 0.3, freq[1][0], 1e-12)
	assert.InDelta(t, 0.7, freq[1][1], 1e-12)
}

func TestMarkovHistoryAbsorbing(t *testing.T) {
	p := dense(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	init := []int{2, 0, 1, 1, 0}
	hist, err := simulate.MarkovHistory(p, init, 20, 3)
	require.NoError(t, err)
	for _, row := range hist {
		assert.Equal(t, init, row)
	}
}

func TestMarkovHistoryMatchesStationary(t *testing.T) {
	p := dense(t, [][]float64{{0.9, 0.1}, {0.2, 0.8}})
	pi, err := matrix.Stationary(p, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, pi[0], 1e-9)

	hist, err := simulate.MarkovHistory(p, constInts(10000, 0), 300, 31382)
	require.NoError(t, err)
	freq, err := simulate.StateFrequencies(hist, 2)
	require.NoError(t, err)

	avg := 0.0
	for _, f := range freq[100:] {
		avg += f[0]
	}
	avg /= float64(len(freq) - 100)
	assert.InDelta(t, pi[0], avg, 0.01)
}

func TestMarkovHistoryErrors(t *testing.T) {
	p := dense(t, [][]float64{{0.9, 0.1}, {0.2, 0.8}})

	_, err := simulate.MarkovHistory(p, []int{0, 2}, 5, 1)
	require.ErrorIs(t, err, simulate.ErrInvalidState)

	_, err = simulate.MarkovHistory(p, []int{0}, 0, 1)
	require.ErrorIs(t, err, simulate.ErrInvalidPeriods)

	_, err = simulate.MarkovHistory(dense(t, [][]float64{{0.9, 0.2}, {0.2, 0.8}}), []int{0}, 5, 1)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)
}

func TestIncomeShockHistory(t *testing.T) {
	d := income.Distribution{
		Prob:    []float64{0.25, 0.75},
		PermShk: []float64{0.9, 1.1},
		TranShk: []float64{0.5, 1.5},
	}
	hist := [][]int{constInts(100, 0), constInts(100, 0), append(constInts(50, 0), constInts(50, 1)...)}
	dstn := [][]income.Distribution{{d, income.Degenerate(1, 0)}}
	gro := [][]float64{{1.01, 1}}

	shk, err := simulate.IncomeShockHistory(hist, dstn, gro, 5)
	require.NoError(t, err)
	assert.Equal(t, constFloats(100, 1), shk.Perm[0])
	assert.Equal(t, constFloats(100, 1), shk.Tran[0])

	low := 0
	for i, tr := range shk.Tran[1] {
		if tr == 0.5 {
			low++
			assert.InDelta(t, 0.9*1.01, shk.Perm[1][i], 1e-15)
		} else {
			assert.InDelta(t, 1.1*1.01, shk.Perm[1][i], 1e-15)
		}
	}
	assert.Equal(t, 25, low)

	// 50 agents in state 0: round(12.5) = 12 by round-half-even.
	low = 0
	for i := 0; i < 50; i++ {
		if shk.Tran[2][i] == 0.5 {
			low++
		}
	}
	assert.Equal(t, 12, low)
	assert.Equal(t, constFloats(50, 0), shk.Tran[2][50:])

	again, err := simulate.IncomeShockHistory(hist, dstn, gro, 5)
	require.NoError(t, err)
	if diff := cmp.Diff(shk, again); diff != "" {
		t.Fatalf("same seed, different shocks:\n%s", diff)
	}
}

func TestIncomeShockHistoryErrors(t *testing.T) {
	d := income.Degenerate(1, 1)
	hist := [][]int{{0}, {1}}

	_, err := simulate.IncomeShockHistory(hist, [][]income.Distribution{{d}}, [][]float64{{1}}, 1)
	require.ErrorIs(t, err, simulate.ErrInvalidState)

	_, err = simulate.IncomeShockHistory(hist, [][]income.Distribution{{d, d}}, [][]float64{{1}}, 1)
	require.ErrorIs(t, err, simulate.ErrDimensionMismatch)

	_, err = simulate.IncomeShockHistory(hist, [][]income.Distribution{{d, {}}}, [][]float64{{1, 1}}, 1)
	require.ErrorIs(t, err, income.ErrEmpty)
}

type fixedPolicy struct{ f interp.Func }

func (p fixedPolicy) CFunc(int, int) interp.Func { return p.f }

func TestSimulateAccounting(t *testing.T) {
	half, err := interp.NewLinear([]float64{0, 1}, []float64{0, 0.5}, interp.WithLowerExtrap())
	require.NoError(t, err)
	hist := [][]int{{0, 1}, {0, 1}}
	shk := simulate.Shocks{
		Perm: [][]float64{{1, 1}, {1.1, 0.9}},
		Tran: [][]float64{{1, 1}, {1, 0}},
	}

	res, err := simulate.Simulate(fixedPolicy{half}, []float64{1.03, 1.1}, hist, shk, []float64{0, 2}, []float64{1, 1})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1.1*2 + 1}, res.MNrm[0])
	assert.InDeltaSlice(t, []float64{0.5, 1.6}, res.CNrm[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 1.6}, res.ANrm[0], 1e-12)
	assert.Equal(t, []float64{0.5, 0.5}, res.MPC[0])

	assert.InDeltaSlice(t, []float64{1.1, 0.9}, res.PLvl[1], 1e-15)
	assert.InDeltaSlice(t, []float64{1.03 / 1.1 * 0.5, 1.1 / 0.9 * 1.6}, res.BNrm[1], 1e-12)
	assert.InDeltaSlice(t, []float64{1.03/1.1*0.5 + 1, 1.1 / 0.9 * 1.6}, res.MNrm[1], 1e-12)
}

func TestSimulateErrors(t *testing.T) {
	half, err := interp.NewLinear([]float64{0, 1}, []float64{0, 0.5})
	require.NoError(t, err)
	shk := simulate.Shocks{Perm: [][]float64{{1}}, Tran: [][]float64{{1}}}

	_, err = simulate.Simulate(fixedPolicy{half}, []float64{1}, [][]int{{0}, {0}}, shk, []float64{0}, []float64{1})
	require.ErrorIs(t, err, simulate.ErrDimensionMismatch)

	_, err = simulate.Simulate(fixedPolicy{half}, []float64{1}, [][]int{{3}}, shk, []float64{0}, []float64{1})
	require.ErrorIs(t, err, simulate.ErrInvalidState)
}

// TestSimulateSolvedCycle runs solved policies forward and checks that no
// agent ever consumes more than its resources allow.
func TestSimulateSolvedCycle(t *testing.T) {
	u, err := utility.NewCRRA(2)
	require.NoError(t, err)
	p := dense(t, [][]float64{{0.9, 0.1}, {0.3, 0.7}})
	grid, err := egm.AssetsAboveMinimum(0.001, 20, 40, 3, nil)
	require.NoError(t, err)
	employed, err := income.Construct(income.Params{PermShkStd: 0.1, PermShkCount: 5, TranShkStd: 0.1, TranShkCount: 5})
	require.NoError(t, err)
	dstn := []income.Distribution{employed, income.Degenerate(1, 0)}
	zero := 0.0

	in := markov.Inputs{
		Next: markov.Terminal(u, 2), IncomeDstn: dstn, LivPrb: 0.98, DiscFac: 0.96, CRRA: 2,
		Rfree: []float64{1.03, 1.03}, PermGroFac: []float64{1.01, 1.01}, MrkvArray: p,
		BoroCnstArt: &zero, AXtraGrid: grid,
	}
	for i := 0; i < 20; i++ {
		sol, err := markov.Solve(in)
		require.NoError(t, err)
		in.Next = sol
	}
	cycle := simulate.Cycle{in.Next}

	const agents, periods = 400, 60
	hist, err := simulate.MarkovHistory(p, constInts(agents, 0), periods, 11)
	require.NoError(t, err)
	shk, err := simulate.IncomeShockHistory(hist, [][]income.Distribution{dstn}, [][]float64{{1.01, 1.01}}, 11)
	require.NoError(t, err)
	res, err := simulate.Simulate(cycle, in.Rfree, hist, shk, constFloats(agents, 0), constFloats(agents, 1))
	require.NoError(t, err)

	for tt := range res.ANrm {
		for i := range res.ANrm[tt] {
			require.GreaterOrEqual(t, res.ANrm[tt][i], -1e-12, "t=%d agent=%d", tt, i)
			require.GreaterOrEqual(t, res.MPC[tt][i], 0.0)
			require.LessOrEqual(t, res.MPC[tt][i], 1.0+1e-9)
		}
	}
}

func TestStateFrequenciesErrors(t *testing.T) {
	_, err := simulate.StateFrequencies([][]int{{0, 4}}, 2)
	require.ErrorIs(t, err, simulate.ErrInvalidState)
}
