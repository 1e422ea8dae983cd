// SPDX-License-Identifier: MIT

// Package matrix: central validators.
//
// Purpose:
//   - Single source of truth for nil/shape/length checks used by every kernel.
//   - Each validator returns a sentinel wrapped with its own tag so call sites
//     can add an operation tag on top without losing errors.Is matching.
package matrix

import (
	"fmt"
	"math"
)

const (
	tagNotNil     = "ValidateNotNil"
	tagSameShape  = "ValidateSameShape"
	tagSquare     = "ValidateSquare"
	tagVecLen     = "ValidateVecLen"
	tagMulCompat  = "ValidateMulCompatible"
	tagStochastic = "ValidateStochastic"
)

// validatorErrorf wraps err with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix if m is nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf(tagNotNil, ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf(tagNotNil, ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf(tagSameShape, ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square.
// Errors: ErrNilMatrix, ErrNonSquare.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(tagSquare, ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has length n.
// Errors: ErrDimensionMismatch.
func ValidateVecLen(x []float64, n int) error {
	if x == nil || len(x) != n {
		return validatorErrorf(tagVecLen, ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols() == b.Rows().
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf(tagMulCompat, ErrDimensionMismatch)
	}

	return nil
}

// ValidateStochastic checks that m is a square row-stochastic matrix.
// MAIN DESCRIPTION:
//   - Every entry must be finite and non-negative, and every row must sum to
//     one within tol.
//
// Implementation:
//   - Stage 1: ValidateSquare.
//   - Stage 2: scan entries in i→j order; accumulate row sums.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNotStochastic (with the offending row).
//
// Complexity:
//   - Time O(n²), Space O(1).
func ValidateStochastic(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.Rows()
	var (
		i, j int
		v, s float64
		err  error
	)
	for i = 0; i < n; i++ {
		s = ZeroSum
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf(tagStochastic, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return validatorErrorf(tagStochastic,
					fmt.Errorf("entry (%d,%d)=%g: %w", i, j, v, ErrNotStochastic))
			}
			s += v
		}
		if math.Abs(s-1) > tol {
			return validatorErrorf(tagStochastic,
				fmt.Errorf("row %d sums to %g: %w", i, s, ErrNotStochastic))
		}
	}

	return nil
}
