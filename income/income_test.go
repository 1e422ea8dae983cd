// SPDX-License-Identifier: MIT

package income_test

import (
	"testing"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// TestValidate covers the distribution domain checks.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		d    income.Distribution
		want error
	}{
		{"ok", income.Degenerate(1, 1), nil},
		{"zero income", income.Degenerate(1, 0), nil},
		{"empty", income.Distribution{}, income.ErrEmpty},
		{"length", income.Distribution{Prob: []float64{1}, PermShk: []float64{1}}, income.ErrLengthMismatch},
		{"sum", income.Distribution{Prob: []float64{0.5}, PermShk: []float64{1}, TranShk: []float64{1}}, income.ErrInvalidProb},
		{"negative prob", income.Distribution{Prob: []float64{1.5, -0.5}, PermShk: []float64{1, 1}, TranShk: []float64{1, 1}}, income.ErrInvalidProb},
		{"perm", income.Degenerate(0, 1), income.ErrInvalidShock},
		{"tran", income.Degenerate(1, -1), income.ErrInvalidShock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestApproxMeanOneLognormal verifies equiprobable points with unit mean,
// increasing order, and the degenerate sigma == 0 case.
func TestApproxMeanOneLognormal(t *testing.T) {
	u, err := income.ApproxMeanOneLognormal(7, 0.1)
	require.NoError(t, err)
	require.Len(t, u.X, 7)
	assert.InDelta(t, 1.0, floats.Sum(u.Prob), 1e-12)
	assert.InDelta(t, 1.0, floats.Dot(u.Prob, u.X), 1e-12)
	for i := 1; i < len(u.X); i++ {
		assert.Greater(t, u.X[i], u.X[i-1])
	}
	assert.Greater(t, u.X[0], 0.0)

	flat, err := income.ApproxMeanOneLognormal(3, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, flat.X)

	_, err = income.ApproxMeanOneLognormal(0, 0.1)
	require.ErrorIs(t, err, income.ErrInvalidParams)
}

// TestConstructWithUnemployment verifies the joint distribution built from
// lognormal parameters plus an unemployment outcome.
func TestConstructWithUnemployment(t *testing.T) {
	d, err := income.Construct(income.Params{
		PermShkStd: 0.1, PermShkCount: 5,
		TranShkStd: 0.1, TranShkCount: 5,
		UnempPrb: 0.05, IncUnemp: 0.3,
	})
	require.NoError(t, err)
	require.NoError(t, d.Validate())
	assert.Equal(t, 30, d.Len())

	perm, tran := d.Mean()
	assert.InDelta(t, 1.0, perm, 1e-12)
	assert.InDelta(t, 1.0, tran, 1e-12)
	assert.InDelta(t, 1.0, d.ExpectedIncome(), 1e-12)
	assert.Equal(t, 0.3, d.MinTranShk())
	// The worst event pairs the lowest permanent point with unemployment.
	assert.InDelta(t, 0.2*0.05, d.WorstIncPrb(), 1e-15)
}

// TestWorstIncPrbDegenerate checks the single-event case.
func TestWorstIncPrbDegenerate(t *testing.T) {
	d := income.Degenerate(1, 0)
	assert.Equal(t, 1.0, d.WorstIncPrb())
	assert.Equal(t, 0.0, d.ExpectedIncome())
}
