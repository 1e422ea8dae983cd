// SPDX-License-Identifier: MIT
// Package egm: sentinel error set shared by the base and Markov solvers.
// Every solver failure wraps exactly one of these; callers match with errors.Is.

package egm

import "errors"

var (
	// ErrInvalidParameter reports an out-of-domain or inconsistently shaped input.
	ErrInvalidParameter = errors.New("egm: invalid parameter")

	// ErrNumericalDegeneracy reports inputs that make the bounding formulas
	// undefined, e.g. zero probability of the worst income event.
	ErrNumericalDegeneracy = errors.New("egm: numerical degeneracy")

	// ErrConfigConflict reports a combination of options the inputs cannot
	// support, e.g. cubic interpolation without next-period marginal-marginal value.
	ErrConfigConflict = errors.New("egm: configuration conflict")
)
