// SPDX-License-Identifier: MIT

// Package matrix: helpers specific to row-stochastic (transition) matrices.
//
// AI-Hints:
//   - Reachable tells the solver which next states need any work at all.
//   - CumulativeRows feeds inverse-CDF sampling in the simulators.
package matrix

import (
	"fmt"
	"math"
)

const (
	opReachable      = "Reachable"
	opSuccessors     = "Successors"
	opCumulativeRows = "CumulativeRows"
	opStationary     = "Stationary"
)

// Reachable reports, for every column j, whether the column has positive
// mass. For a matrix with non-negative entries this means some row assigns
// positive probability to j; a false entry marks a next state that no current
// state can transition into.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²).
func Reachable(p Matrix) ([]bool, error) {
	if err := ValidateSquare(p); err != nil {
		return nil, matrixErrorf(opReachable, err)
	}
	cs, err := ColSums(p)
	if err != nil {
		return nil, matrixErrorf(opReachable, err)
	}
	out := make([]bool, len(cs))
	for j, s := range cs {
		out[j] = s > 0
	}

	return out, nil
}

// Successors returns, in increasing order, the columns j with p[i,j] > 0.
// Errors: ErrNilMatrix, ErrOutOfRange.
func Successors(p Matrix, i int) ([]int, error) {
	if err := ValidateNotNil(p); err != nil {
		return nil, matrixErrorf(opSuccessors, err)
	}
	var out []int
	for j := 0; j < p.Cols(); j++ {
		v, err := p.At(i, j)
		if err != nil {
			return nil, matrixErrorf(opSuccessors, err)
		}
		if v > 0 {
			out = append(out, j)
		}
	}

	return out, nil
}

// CumulativeRows returns the running sums of every row. The last entry of
// each row is the row sum (≈1 for a stochastic matrix).
// Errors: ErrNilMatrix.
func CumulativeRows(p Matrix) ([][]float64, error) {
	if err := ValidateNotNil(p); err != nil {
		return nil, matrixErrorf(opCumulativeRows, err)
	}
	r, c := p.Rows(), p.Cols()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		acc := ZeroSum
		for j := 0; j < c; j++ {
			v, err := p.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opCumulativeRows, err)
			}
			acc += v
			row[j] = acc
		}
		out[i] = row
	}

	return out, nil
}

// Stationary returns a stationary distribution π = πP of a row-stochastic
// matrix by power iteration.
// MAIN DESCRIPTION:
//   - Iterates on the lazy chain L = (P + I)/2, which has the same stationary
//     distributions as P but no periodic oscillation.
//
// Implementation:
//   - Stage 1: ValidateStochastic(p, DefaultEpsilon).
//   - Stage 2: build L with NewIdentity/Add/Scale.
//   - Stage 3: start from the uniform vector, push with VecMat until the L1
//     change drops below tol.
//
// Behavior highlights:
//   - For reducible chains the result depends on the uniform start; it is still
//     a valid stationary vector.
//
// Errors:
//   - ErrNotStochastic, ErrNonSquare, ErrNoConvergence.
//
// Complexity:
//   - Time O(iter * n²), Space O(n²).
func Stationary(p Matrix, tol float64, maxIter int) ([]float64, error) {
	if err := ValidateStochastic(p, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opStationary, err)
	}
	if tol <= 0 {
		tol = DefaultStationaryTol
	}
	if maxIter <= 0 {
		maxIter = DefaultStationaryMaxIter
	}
	n := p.Rows()
	id, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opStationary, err)
	}
	sum, err := Add(p, id)
	if err != nil {
		return nil, matrixErrorf(opStationary, err)
	}
	lazy, err := Scale(sum, 0.5)
	if err != nil {
		return nil, matrixErrorf(opStationary, err)
	}

	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1 / float64(n)
	}
	for it := 0; it < maxIter; it++ {
		next, err := VecMat(pi, lazy)
		if err != nil {
			return nil, matrixErrorf(opStationary, err)
		}
		dist := ZeroSum
		for i := range next {
			dist += math.Abs(next[i] - pi[i])
		}
		pi = next
		if dist < tol {
			return pi, nil
		}
	}

	return nil, matrixErrorf(opStationary, fmt.Errorf("after %d iterations: %w", maxIter, ErrNoConvergence))
}
