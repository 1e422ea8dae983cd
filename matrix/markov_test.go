// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateStochastic covers accepted and rejected transition matrices.
func TestValidateStochastic(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"identity", [][]float64{{1, 0}, {0, 1}}, nil},
		{"mixed", [][]float64{{0.9, 0.1}, {0.2, 0.8}}, nil},
		{"row sum", [][]float64{{0.9, 0.2}, {0.2, 0.8}}, matrix.ErrNotStochastic},
		{"negative", [][]float64{{1.1, -0.1}, {0.2, 0.8}}, matrix.ErrNotStochastic},
		{"non-square", [][]float64{{1, 0, 0}, {0, 1, 0}}, matrix.ErrNonSquare},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateStochastic(mustDense(t, tc.rows), matrix.DefaultEpsilon)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestReachableSuccessors verifies column reachability with a zero column.
func TestReachableSuccessors(t *testing.T) {
	p := mustDense(t, [][]float64{{0.5, 0.5, 0}, {0, 1, 0}, {0.5, 0.5, 0}})
	r, err := matrix.Reachable(p)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, r)

	_, err = matrix.Reachable(mustDense(t, [][]float64{{0.5, 0.5}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	s, err := matrix.Successors(p, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, s)
}

// TestCumulativeRows verifies running row sums.
func TestCumulativeRows(t *testing.T) {
	p := mustDense(t, [][]float64{{0.25, 0.25, 0.5}})
	c, err := matrix.CumulativeRows(p)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.25, 0.5, 1}}, c)
}

// TestStationary verifies the stationary distribution of a two-state chain
// and of a periodic chain that plain power iteration would not settle on.
func TestStationary(t *testing.T) {
	pi, err := matrix.Stationary(mustDense(t, [][]float64{{0.9, 0.1}, {0.2, 0.8}}), 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, pi[0], 1e-10)
	assert.InDelta(t, 1.0/3.0, pi[1], 1e-10)

	pi, err = matrix.Stationary(mustDense(t, [][]float64{{0, 1}, {1, 0}}), 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pi[0], 1e-12)

	_, err = matrix.Stationary(mustDense(t, [][]float64{{0.5, 0.6}, {0.2, 0.8}}), 0, 0)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)
}
