// SPDX-License-Identifier: MIT

package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/consmarkov/agent"
	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/markov"
	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/katalvlaran/consmarkov/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newType(t *testing.T, name string, crra float64) *agent.Type {
	t.Helper()
	p, err := matrix.NewDenseFromRows([][]float64{{0.95, 0.05}, {0.5, 0.5}})
	require.NoError(t, err)
	grid, err := egm.AssetsAboveMinimum(0.001, 20, 32, 3, nil)
	require.NoError(t, err)
	employed, err := income.Construct(income.Params{
		PermShkStd: 0.1, PermShkCount: 5, TranShkStd: 0.1, TranShkCount: 5,
	})
	require.NoError(t, err)
	zero := 0.0

	return &agent.Type{
		Name:        name,
		CRRA:        crra,
		DiscFac:     0.96,
		Rfree:       []float64{1.03, 1.03},
		MrkvArray:   p,
		BoroCnstArt: &zero,
		AXtraGrid:   grid,
		Periods: []agent.Period{{
			IncomeDstn: []income.Distribution{employed, income.Degenerate(1, 0.3)},
			LivPrb:     0.98,
			PermGroFac: []float64{1.01, 1.01},
		}},
		Cycles: 1,
	}
}

func TestSolveFiniteHorizon(t *testing.T) {
	typ := newType(t, "finite", 2)
	typ.Cycles = 3

	res, err := typ.Solve(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Solutions, 3)
	assert.Equal(t, 3, res.Iterations)

	u, err := utility.NewCRRA(2)
	require.NoError(t, err)
	p := typ.Periods[0]
	last, err := markov.Solve(markov.Inputs{
		Next: markov.Terminal(u, 2), IncomeDstn: p.IncomeDstn, LivPrb: p.LivPrb,
		DiscFac: typ.DiscFac, CRRA: typ.CRRA, Rfree: typ.Rfree, PermGroFac: p.PermGroFac,
		MrkvArray: typ.MrkvArray, BoroCnstArt: typ.BoroCnstArt, AXtraGrid: typ.AXtraGrid,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, agent.Distance(last, res.Solutions[2], typ.AXtraGrid))

	// Earlier periods save more out of the same resources.
	for i := 0; i < 2; i++ {
		assert.Less(t, res.Solutions[0].CFunc[i].Eval(3), res.Solutions[2].CFunc[i].Eval(3))
	}
}

func TestSolveLifeCycleOrder(t *testing.T) {
	typ := newType(t, "lifecycle", 2)
	young := typ.Periods[0]
	old := young
	old.LivPrb = 0.5
	typ.Periods = []agent.Period{young, old}

	res, err := typ.Solve(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Solutions, 2)
	// Low survival makes the old consume more.
	assert.Greater(t, res.Solutions[1].CFunc[0].Eval(2), res.Solutions[0].CFunc[0].Eval(2))
}

func TestSolveInfiniteHorizon(t *testing.T) {
	typ := newType(t, "infinite", 2)
	typ.Cycles = 0
	core, logs := observer.New(zapcore.DebugLevel)

	res, err := typ.Solve(context.Background(), zap.New(core))
	require.NoError(t, err)
	require.Len(t, res.Solutions, 1)
	assert.Greater(t, res.Iterations, 1)
	assert.Less(t, res.Distance, agent.DefaultTolerance)

	// One more backward step leaves the policy essentially unchanged.
	p := typ.Periods[0]
	again, err := markov.Solve(markov.Inputs{
		Next: res.Solutions[0], IncomeDstn: p.IncomeDstn, LivPrb: p.LivPrb,
		DiscFac: typ.DiscFac, CRRA: typ.CRRA, Rfree: typ.Rfree, PermGroFac: p.PermGroFac,
		MrkvArray: typ.MrkvArray, BoroCnstArt: typ.BoroCnstArt, AXtraGrid: typ.AXtraGrid,
	})
	require.NoError(t, err)
	assert.Less(t, agent.Distance(again, res.Solutions[0], typ.AXtraGrid), 1e-5)

	assert.Equal(t, 1, logs.FilterMessage("infinite-horizon solve converged").Len())
	assert.Equal(t, res.Iterations-1, logs.FilterMessage("cycle solved").Len())
}

func TestSolveErrors(t *testing.T) {
	t.Run("no convergence", func(t *testing.T) {
		typ := newType(t, "slow", 2)
		typ.Cycles, typ.MaxIterations = 0, 2
		_, err := typ.Solve(context.Background(), nil)
		require.ErrorIs(t, err, agent.ErrNoConvergence)
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newType(t, "cancelled", 2).Solve(ctx, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
	t.Run("no periods", func(t *testing.T) {
		typ := newType(t, "empty", 2)
		typ.Periods = nil
		_, err := typ.Solve(context.Background(), nil)
		require.ErrorIs(t, err, agent.ErrInvalidType)
	})
	t.Run("bad crra", func(t *testing.T) {
		_, err := newType(t, "risk-loving", -1).Solve(context.Background(), nil)
		require.ErrorIs(t, err, agent.ErrInvalidType)
	})
	t.Run("solver error carries kind", func(t *testing.T) {
		typ := newType(t, "conflict", 1)
		typ.VFunc = true
		_, err := typ.Solve(context.Background(), nil)
		require.ErrorIs(t, err, markov.ErrConfigConflict)
	})
}

func TestSolveTypes(t *testing.T) {
	crras := []float64{1.5, 2, 3, 4}
	types := make([]*agent.Type, len(crras))
	for i, r := range crras {
		types[i] = newType(t, "sweep", r)
		types[i].Cycles = 5
	}

	got, err := agent.SolveTypes(context.Background(), types, nil)
	require.NoError(t, err)
	require.Len(t, got, len(types))
	for i, typ := range types {
		want, err := typ.Solve(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, agent.Distance(want.Solutions[0], got[i].Solutions[0], typ.AXtraGrid))
	}
}

func TestSolveTypesFirstError(t *testing.T) {
	bad := newType(t, "bad", 2)
	bad.Periods = nil
	types := []*agent.Type{newType(t, "good", 2), bad, newType(t, "good2", 3)}

	res, err := agent.SolveTypes(context.Background(), types, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, agent.ErrInvalidType))
	assert.Nil(t, res)
}
