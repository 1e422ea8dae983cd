// SPDX-License-Identifier: MIT

// Package consmarkov solves consumption-saving problems in which income risk
// and the return on saving depend on a discrete Markov state (employed or
// unemployed, boom or bust).
//
// The solver works backward from a terminal period with the endogenous grid
// method: for each current state it weights next-period marginal values by
// the transition probabilities, inverts the first-order condition on a grid
// of end-of-period assets, and caps the result with the borrowing limit.
//
// Packages:
//
//	utility/    CRRA utility and its inverses
//	interp/     linear and cubic Hermite interpolants, lower envelope
//	matrix/     dense matrices, transition-matrix helpers, stationary distribution
//	income/     discrete income-shock distributions and lognormal discretisation
//	egm/        single-state solver and the building blocks it shares
//	markov/     one-period solver over all Markov states
//	agent/      backward induction over a life cycle or to convergence, batch solves
//	simulate/   state and income-shock panels, forward simulation
//	config/     YAML model description
//	cmd/consmarkov  command-line front end
//
// Quick example (one period before the end, two states):
//
//	u, _ := utility.NewCRRA(2)
//	p, _ := matrix.NewDenseFromRows([][]float64{{0.9, 0.1}, {0.2, 0.8}})
//	sol, err := markov.Solve(markov.Inputs{
//		Next:       markov.Terminal(u, 2),
//		IncomeDstn: []income.Distribution{income.Degenerate(1, 1), income.Degenerate(1, 0.3)},
//		LivPrb:     1, DiscFac: 0.96, CRRA: 2,
//		Rfree:      []float64{1.03, 1.03},
//		PermGroFac: []float64{1, 1},
//		MrkvArray:  p,
//		AXtraGrid:  grid,
//	})
package consmarkov
