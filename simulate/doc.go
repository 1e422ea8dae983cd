// SPDX-License-Identifier: MIT

// Package simulate draws discrete-state and income-shock panels for a
// population of agents and runs solved consumption rules forward through them.
//
// Draws are stratified rather than i.i.d.: each period the agents in a state
// receive an evenly spaced grid of uniform draws (or an integer allocation of
// income events) in a random order, so empirical frequencies match the
// theoretical ones as closely as integer rounding allows.
//
// Panels are indexed [t][agent]. Every function is deterministic in its seed;
// seed == 0 selects a fixed default stream.
//
// AI-Hints:
//   - Call MarkovHistory first, pass its panel to IncomeShockHistory, then
//     feed both to Simulate together with a Policy (Cycle wraps solved periods).
//   - Each call builds its own *rand.Rand, so concurrent calls are safe.
package simulate
