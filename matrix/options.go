// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
package matrix

const (
	// DefaultEpsilon is the absolute tolerance used when checking that the
	// rows of a transition matrix sum to one.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf makes Set reject NaN/±Inf unless a Dense was
	// explicitly created with the guard disabled.
	DefaultValidateNaNInf = true

	// DefaultStationaryTol is the L1 distance between consecutive iterates at
	// which Stationary stops.
	DefaultStationaryTol = 1e-13

	// DefaultStationaryMaxIter caps the power iteration in Stationary.
	DefaultStationaryMaxIter = 100000
)

// ZeroSum is the initial value of every accumulator in the kernels.
const ZeroSum = 0.0
