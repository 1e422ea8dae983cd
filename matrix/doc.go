// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major matrix used to carry Markov
// transition matrices through the solver, together with the small set of
// linear-algebra kernels the solver needs (Mul, MatVec, Transpose, Add, Scale)
// and chain-specific helpers (stochastic validation, reachability, cumulative
// rows, stationary distribution).
//
// Contracts:
//   - Public constructors and accessors return sentinel errors; they never panic
//     on user input. Callers match errors with errors.Is.
//   - Kernels never mutate their operands and always allocate a fresh result.
//   - Loop orders are fixed so results are bit-for-bit reproducible.
//
// AI-Hints:
//   - Keep operands as *Dense to hit the flat-slice fast paths.
//   - Use ValidateStochastic once at the boundary; kernels do not re-check it.
package matrix
