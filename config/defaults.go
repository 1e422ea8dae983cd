// SPDX-License-Identifier: MIT

package config

import "github.com/katalvlaran/consmarkov/income"

// Parameters of the default employment × business-cycle chain.
const (
	defaultUnempLength     = 5.0  // expected quarters of unemployment
	defaultUrateGood       = 0.05 // unemployment rate in a boom
	defaultUrateBad        = 0.12 // unemployment rate in a bust
	defaultBustProb        = 0.01 // probability a boom ends
	defaultRecessionLength = 20.0 // expected quarters of a bust
)

// DefaultTransition returns the four-state chain over
// (employed, boom), (unemployed, boom), (employed, bust), (unemployed, bust).
// Re-employment is equally likely in both phases; separations are set so
// that each phase has its own steady-state unemployment rate.
func DefaultTransition() [][]float64 {
	reemploy := 1 / defaultUnempLength
	unempGood := reemploy * defaultUrateGood / (1 - defaultUrateGood)
	unempBad := reemploy * defaultUrateBad / (1 - defaultUrateBad)
	boomProb := 1 / defaultRecessionLength
	bust := defaultBustProb

	return [][]float64{
		{(1 - unempGood) * (1 - bust), unempGood * (1 - bust), (1 - unempGood) * bust, unempGood * bust},
		{reemploy * (1 - bust), (1 - reemploy) * (1 - bust), reemploy * bust, (1 - reemploy) * bust},
		{(1 - unempBad) * boomProb, unempBad * boomProb, (1 - unempBad) * (1 - boomProb), unempBad * (1 - boomProb)},
		{reemploy * boomProb, (1 - reemploy) * boomProb, reemploy * (1 - boomProb), (1 - reemploy) * (1 - boomProb)},
	}
}

// DefaultConfig returns the four-state employment and recession model.
// Employed agents face lognormal permanent and transitory shocks; the
// unemployed receive no income.
func DefaultConfig() *Config {
	zero := 0.0
	employed := func(name string) StateConfig {
		return StateConfig{
			Name: name, Rfree: 1.03, PermGroFac: 1.01,
			Income: &income.Params{PermShkStd: 0.1, PermShkCount: 7, TranShkStd: 0.1, TranShkCount: 7},
		}
	}
	unemployed := func(name string) StateConfig {
		d := income.Degenerate(1, 0)
		return StateConfig{Name: name, Rfree: 1.03, PermGroFac: 1.01, Shocks: &d}
	}

	return &Config{
		Name:          "employment-cycle",
		CRRA:          2,
		DiscFac:       0.96,
		LivPrb:        0.98,
		BoroCnstArt:   &zero,
		VFunc:         true,
		Cycles:        0,
		Tolerance:     1e-6,
		MaxIterations: 2000,
		Grid:          GridConfig{Min: 0.001, Max: 20, Count: 48, Nest: 3},
		Transition:    DefaultTransition(),
		States: []StateConfig{
			employed("employed-boom"),
			unemployed("unemployed-boom"),
			employed("employed-bust"),
			unemployed("unemployed-bust"),
		},
		Simulation: SimulationConfig{Agents: 10000, Periods: 200, Seed: 31382, InitState: 0},
	}
}
