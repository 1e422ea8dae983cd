// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/agent"
	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/matrix"
)

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidConfig)...))
	}

	if !(c.CRRA > 0) {
		bad("crra=%g must be > 0", c.CRRA)
	}
	if !(c.DiscFac > 0) {
		bad("disc_fac=%g must be > 0", c.DiscFac)
	}
	if !(c.LivPrb > 0 && c.LivPrb <= 1) {
		bad("liv_prb=%g must be in (0,1]", c.LivPrb)
	}
	if c.BoroCnstArt != nil && math.IsNaN(*c.BoroCnstArt) {
		bad("boro_cnst_art is NaN")
	}
	if c.Cycles < 0 {
		bad("cycles=%d must be >= 0", c.Cycles)
	}
	if c.Tolerance < 0 || c.MaxIterations < 0 {
		bad("tolerance and max_iterations must be >= 0")
	}
	if math.IsNaN(c.ConstraintTolerance) || c.ConstraintTolerance < 0 {
		bad("constraint_tolerance=%g must be >= 0", c.ConstraintTolerance)
	}
	if c.VFunc && c.CRRA == 1 {
		bad("vfunc needs crra != 1")
	}
	if !(c.Grid.Min > 0 && c.Grid.Max > c.Grid.Min) || c.Grid.Count < 2 || c.Grid.Nest < 0 {
		bad("grid %+v: need 0 < min < max, count >= 2, nest >= 0", c.Grid)
	}

	n := len(c.States)
	if n == 0 {
		bad("no states")
	}
	if len(c.Transition) != n {
		bad("transition has %d rows for %d states", len(c.Transition), n)
	}
	for i, row := range c.Transition {
		if len(row) != n {
			bad("transition row %d has %d entries for %d states", i, len(row), n)
		}
	}
	for i, s := range c.States {
		if s.Name == "" {
			bad("state %d has no name", i)
		}
		if !(s.Rfree > 0) || !(s.PermGroFac > 0) {
			bad("state %q: rfree and perm_gro_fac must be > 0", s.Name)
		}
		if (s.Income == nil) == (s.Shocks == nil) {
			bad("state %q: set exactly one of income and shocks", s.Name)
		}
	}

	sim := c.Simulation
	if sim.Agents <= 0 || sim.Periods <= 0 {
		bad("simulation needs agents > 0 and periods > 0")
	}
	if sim.InitState < 0 || sim.InitState >= n {
		bad("simulation init_state=%d out of range", sim.InitState)
	}

	return errors.Join(errs...)
}

// Build validates c and assembles the agent type it describes.
func (c *Config) Build() (*agent.Type, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	grid, err := egm.AssetsAboveMinimum(c.Grid.Min, c.Grid.Max, c.Grid.Count, c.Grid.Nest, c.Grid.Extra)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	trans, err := c.TransitionMatrix()
	if err != nil {
		return nil, err
	}
	dstn, err := c.IncomeDistributions()
	if err != nil {
		return nil, err
	}

	n := len(c.States)
	rfree, gro := make([]float64, n), make([]float64, n)
	for i, s := range c.States {
		rfree[i], gro[i] = s.Rfree, s.PermGroFac
	}
	var art *float64
	if c.BoroCnstArt != nil {
		v := *c.BoroCnstArt
		art = &v
	}

	return &agent.Type{
		Name:                c.Name,
		CRRA:                c.CRRA,
		DiscFac:             c.DiscFac,
		Rfree:               rfree,
		MrkvArray:           trans,
		BoroCnstArt:         art,
		AXtraGrid:           grid,
		VFunc:               c.VFunc,
		Cubic:               c.Cubic,
		Periods:             []agent.Period{{IncomeDstn: dstn, LivPrb: c.LivPrb, PermGroFac: gro}},
		Cycles:              c.Cycles,
		Tolerance:           c.Tolerance,
		MaxIterations:       c.MaxIterations,
		ConstraintTolerance: c.ConstraintTolerance,
	}, nil
}

// TransitionMatrix returns the transition matrix, row-normalised when
// NormalizeTransition is set, and checks that it is row-stochastic.
func (c *Config) TransitionMatrix() (matrix.Matrix, error) {
	dense, err := matrix.NewDenseFromRows(c.Transition)
	if err != nil {
		return nil, fmt.Errorf("transition: %w: %w", err, ErrInvalidConfig)
	}
	var m matrix.Matrix = dense
	if c.NormalizeTransition {
		if m, _, err = matrix.NormalizeRowsL1(m); err != nil {
			return nil, fmt.Errorf("transition: %w: %w", err, ErrInvalidConfig)
		}
	}
	if err = matrix.ValidateStochastic(m, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("transition: %w: %w", err, ErrInvalidConfig)
	}

	return m, nil
}

// IncomeDistributions discretises or copies the income process of every
// state.
func (c *Config) IncomeDistributions() ([]income.Distribution, error) {
	out := make([]income.Distribution, len(c.States))
	for i, s := range c.States {
		var (
			d   income.Distribution
			err error
		)
		if s.Shocks != nil {
			d = s.Shocks.Clone()
		} else {
			d, err = income.Construct(*s.Income)
		}
		if err == nil {
			err = d.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("state %q: %w: %w", s.Name, err, ErrInvalidConfig)
		}
		out[i] = d
	}

	return out, nil
}
