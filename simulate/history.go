// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/matrix"
	"gonum.org/v1/gonum/floats"
)

// MarkovHistory draws a [periods][agents] panel of discrete states.
// MAIN DESCRIPTION:
//   - Row 0 is init.
//   - Each later period permutes the base draws k/N + 1/(2N), k = 0..N-1, and
//     moves an agent in state s with draw d to the first state j whose
//     cumulative transition probability P[s,0]+...+P[s,j] reaches d.
//
// Behavior highlights:
//   - A draw above a row's total (rounding) lands in the last state.
//
// Errors:
//   - ErrInvalidPeriods, ErrInvalidState; matrix errors for a matrix that is
//     not row-stochastic.
//
// Complexity:
//   - Time O(periods · agents · log S), Space O(periods · agents).
func MarkovHistory(p matrix.Matrix, init []int, periods int, seed int64) ([][]int, error) {
	if err := matrix.ValidateStochastic(p, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("MarkovHistory: %w", err)
	}
	if periods <= 0 {
		return nil, fmt.Errorf("MarkovHistory: periods=%d: %w", periods, ErrInvalidPeriods)
	}
	nStates := p.Rows()
	for a, s := range init {
		if s < 0 || s >= nStates {
			return nil, fmt.Errorf("MarkovHistory: agent %d state %d: %w", a, s, ErrInvalidState)
		}
	}
	cutoffs, err := matrix.CumulativeRows(p)
	if err != nil {
		return nil, fmt.Errorf("MarkovHistory: %w", err)
	}

	n := len(init)
	base := make([]float64, n)
	for k := range base {
		base[k] = float64(k)/float64(n) + 1/(2*float64(n))
	}

	r := deriveRNG(seed, streamMarkov)
	hist := make([][]int, periods)
	hist[0] = append([]int(nil), init...)
	draws := make([]float64, n)
	for t := 1; t < periods; t++ {
		copy(draws, base)
		shuffle(draws, r)
		now := make([]int, n)
		for a, s := range hist[t-1] {
			j := sort.SearchFloat64s(cutoffs[s], draws[a])
			if j >= nStates {
				j = nStates - 1
			}
			now[a] = j
		}
		hist[t] = now
	}

	return hist, nil
}

// IncomeShockHistory draws income-shock panels matching a state panel.
// MAIN DESCRIPTION:
//   - Row 0 is all ones.
//   - For t >= 1 the inputs of period index k = (t-1) mod len(dstn) apply.
//     For each state s, the n agents in s receive event e for
//     round(cum_e·n) - round(cum_{e-1}·n) of them, where cum is the cumulative
//     probability; the event list is shuffled before assignment.
//   - Perm = PermShk·permGroFac[k][s], Tran = TranShk.
//
// Errors:
//   - ErrDimensionMismatch for empty or ragged inputs, ErrInvalidState for a
//     state without a distribution, income errors for an invalid distribution
//     of an occupied state.
func IncomeShockHistory(hist [][]int, dstn [][]income.Distribution, permGroFac [][]float64, seed int64) (Shocks, error) {
	if len(hist) == 0 || len(dstn) == 0 || len(dstn) != len(permGroFac) {
		return Shocks{}, fmt.Errorf("IncomeShockHistory: periods=%d dstn=%d permGroFac=%d: %w",
			len(hist), len(dstn), len(permGroFac), ErrDimensionMismatch)
	}
	for k := range dstn {
		if len(dstn[k]) != len(permGroFac[k]) {
			return Shocks{}, fmt.Errorf("IncomeShockHistory: period %d: %w", k, ErrDimensionMismatch)
		}
	}
	n := len(hist[0])
	out := Shocks{Perm: make([][]float64, len(hist)), Tran: make([][]float64, len(hist))}
	out.Perm[0], out.Tran[0] = ones(n), ones(n)

	r := deriveRNG(seed, streamIncome)
	for t := 1; t < len(hist); t++ {
		if len(hist[t]) != n {
			return Shocks{}, fmt.Errorf("IncomeShockHistory: period %d has %d agents, want %d: %w", t, len(hist[t]), n, ErrDimensionMismatch)
		}
		k := (t - 1) % len(dstn)
		members := make([][]int, len(dstn[k]))
		for a, s := range hist[t] {
			if s < 0 || s >= len(members) {
				return Shocks{}, fmt.Errorf("IncomeShockHistory: period %d agent %d state %d: %w", t, a, s, ErrInvalidState)
			}
			members[s] = append(members[s], a)
		}

		perm, tran := make([]float64, n), make([]float64, n)
		for s, who := range members {
			if len(who) == 0 {
				continue
			}
			d := dstn[k][s]
			if err := d.Validate(); err != nil {
				return Shocks{}, fmt.Errorf("IncomeShockHistory: period %d state %d: %w", t, s, err)
			}
			events := eventList(d.Prob, len(who))
			shuffle(events, r)
			for x, a := range who {
				e := events[x]
				perm[a] = d.PermShk[e] * permGroFac[k][s]
				tran[a] = d.TranShk[e]
			}
		}
		out.Perm[t], out.Tran[t] = perm, tran
	}

	return out, nil
}

// eventList allocates n draws to events in proportion to prob using rounded
// cumulative cutoffs. The list always has exactly n entries: rounding
// shortfalls go to the last event.
func eventList(prob []float64, n int) []int {
	cum := make([]float64, len(prob))
	floats.CumSum(cum, prob)

	out := make([]int, 0, n)
	bot := 0
	for e, c := range cum {
		top := int(math.RoundToEven(c * float64(n)))
		if top > n {
			top = n
		}
		for ; bot < top; bot++ {
			out = append(out, e)
		}
	}
	for len(out) < n {
		out = append(out, len(prob)-1)
	}

	return out
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// StateFrequencies returns, per period, the share of agents in each of
// nStates states.
func StateFrequencies(hist [][]int, nStates int) ([][]float64, error) {
	out := make([][]float64, len(hist))
	for t, row := range hist {
		freq := make([]float64, nStates)
		for a, s := range row {
			if s < 0 || s >= nStates {
				return nil, fmt.Errorf("StateFrequencies: period %d agent %d state %d: %w", t, a, s, ErrInvalidState)
			}
			freq[s]++
		}
		if len(row) > 0 {
			floats.Scale(1/float64(len(row)), freq)
		}
		out[t] = freq
	}

	return out, nil
}
