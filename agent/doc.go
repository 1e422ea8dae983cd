// SPDX-License-Identifier: MIT

// Package agent drives backward induction for consumer types whose income
// and returns depend on a discrete Markov state.
//
// A Type holds time-invariant constants (risk aversion, discount factor,
// returns, transition matrix, asset grid) and a cycle of per-period inputs
// (income distributions, survival, growth). Solve iterates markov.Solve
// backward from the terminal period either for a fixed number of cycles or,
// with Cycles == 0, until successive cycles agree within Tolerance.
//
// SolveTypes solves independent types in parallel.
//
// AI-Hints:
//   - Solutions are returned in forward time order; simulate.Cycle accepts
//     them directly.
//   - Pass a nil logger to silence all output.
package agent
