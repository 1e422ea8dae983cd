// SPDX-License-Identifier: MIT

// Package markov solves one period of a consumption-saving problem in which
// income risk, the interest factor and permanent-income growth depend on a
// discrete Markov state.
//
// Solve is a pure function of its Inputs. It runs a fixed pipeline over an
// immutable per-call working context:
//
//  1. validate inputs (no numerics before every check passed);
//  2. resolve natural and effective borrowing constraints (ResolveConstraints);
//  3. build end-of-period (marginal) value conditional on each reachable next state;
//  4. aggregate them per current state through the transition matrix;
//  5. compute human wealth and bounding MPCs per current state;
//  6. build consumption (and optionally value) functions per current state.
//
// Next states that no current state can reach are never evaluated: their
// income distributions and next-period functions may be absent.
//
// The per-state numerical work is delegated to package egm; this package
// supplies the loops over states and the cross-state weighting.
package markov
