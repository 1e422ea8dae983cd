// SPDX-License-Identifier: MIT

// Package matrix: thin constructors and reductions on top of the kernels.
package matrix

import (
	"fmt"
	"math"
)

const (
	opIdentity        = "NewIdentity"
	opRowSums         = "RowSums"
	opColSums         = "ColSums"
	opAllClose        = "AllClose"
	opNormalizeRowsL1 = "NormalizeRowsL1"
)

// NewIdentity returns the n×n identity matrix.
// Errors: ErrInvalidDimensions when n <= 0.
func NewIdentity(n int) (*Dense, error) {
	d, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}

	return d, nil
}

// RowSums returns the vector of row sums (m * 1).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1
	}
	s, err := MatVec(m, ones)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}

	return s, nil
}

// ColSums returns the vector of column sums (1ᵀ * m).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	ones := make([]float64, m.Rows())
	for i := range ones {
		ones[i] = 1
	}
	s, err := VecMat(ones, m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}

	return s, nil
}

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds elementwise.
// Negative tolerances are taken in absolute value; NaN/Inf tolerances
// return ErrNaNInf.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	r, c := a.Rows(), a.Cols()
	var (
		av, bv float64
		err    error
	)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// NormalizeRowsL1 scales each row to unit L1 norm and returns the result
// together with the original norms. Rows with zero norm are left unchanged.
// MAIN DESCRIPTION:
//   - Turns a matrix of non-negative weights into a row-stochastic matrix.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func NormalizeRowsL1(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	r, c := X.Rows(), X.Cols()
	norms := make([]float64, r)
	res, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	var (
		i, j int
		v, s float64
	)
	for i = 0; i < r; i++ {
		s = ZeroSum
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opNormalizeRowsL1, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*c+j] = v
			s += math.Abs(v)
		}
		norms[i] = s
		if s > 0 {
			for j = 0; j < c; j++ {
				res.data[i*c+j] /= s
			}
		}
	}

	return res, norms, nil
}
