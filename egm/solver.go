// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/income"
	"github.com/katalvlaran/consmarkov/utility"
)

// Inputs configures one period of the single-state problem.
type Inputs struct {
	IncomeDstn  income.Distribution
	LivPrb      float64
	DiscFac     float64
	CRRA        float64
	Rfree       float64
	PermGroFac  float64
	BoroCnstArt *float64 // nil: no artificial constraint
	AXtraGrid   []float64
	VFunc       bool
	Cubic       bool
}

// validate checks in against next. It mirrors the checks of the Markov
// solver so both report the same error kinds for the same mistakes.
func (in Inputs) validate(next Solution) error {
	if err := in.IncomeDstn.Validate(); err != nil {
		return fmt.Errorf("IncomeDstn: %w: %w", err, ErrInvalidParameter)
	}
	if err := ValidatePreferences(in.DiscFac, in.LivPrb); err != nil {
		return err
	}
	if err := ValidateReturns(in.Rfree, in.PermGroFac); err != nil {
		return err
	}
	if err := ValidateArtificial(in.BoroCnstArt); err != nil {
		return err
	}
	if err := ValidateGrid(in.AXtraGrid); err != nil {
		return err
	}
	if next.VPFunc == nil {
		return fmt.Errorf("next VPFunc is nil: %w", ErrInvalidParameter)
	}
	if in.Cubic && next.VPPFunc == nil {
		return fmt.Errorf("cubic interpolation needs next VPPFunc: %w", ErrConfigConflict)
	}
	if in.VFunc {
		if in.CRRA == 1 {
			return fmt.Errorf("value function with log utility: %w", ErrConfigConflict)
		}
		if next.VFunc == nil {
			return fmt.Errorf("value function needs next VFunc: %w", ErrConfigConflict)
		}
	}

	return nil
}

// SolveOnePeriod solves one period of the single-state problem by the
// endogenous grid method, given next period's solution.
// MAIN DESCRIPTION:
//   - Stage 1: validate inputs; errors wrap ErrInvalidParameter or ErrConfigConflict.
//   - Stage 2: natural and effective borrowing constraints.
//   - Stage 3: end-of-period marginal value on a = BoroCnstNat + aXtra.
//   - Stage 4: human wealth and bounding MPCs.
//   - Stage 5: consumption function (EGM + lower envelope), optional value function.
//
// Errors:
//   - ErrInvalidParameter, ErrConfigConflict, ErrNumericalDegeneracy.
func SolveOnePeriod(next Solution, in Inputs) (Solution, error) {
	u, err := utility.NewCRRA(in.CRRA)
	if err != nil {
		return Solution{}, fmt.Errorf("SolveOnePeriod: %w: %w", err, ErrInvalidParameter)
	}
	if err = in.validate(next); err != nil {
		return Solution{}, fmt.Errorf("SolveOnePeriod: %w", err)
	}

	dstn := in.IncomeDstn
	rho := u.Rho()
	discFacEff := in.DiscFac * in.LivPrb

	nat := NaturalBorrowingConstraint(dstn, next.MNrmMin, in.Rfree, in.PermGroFac)
	mNrmMin := nat
	if in.BoroCnstArt != nil {
		mNrmMin = math.Max(nat, *in.BoroCnstArt)
	}

	a := AssetGrid(nat, in.AXtraGrid)
	expect := Expectation{U: u, Dstn: dstn, DiscFacEff: discFacEff, Rfree: in.Rfree, PermGroFac: in.PermGroFac}
	vP := expect.MargValue(a, next.VPFunc)
	var vPP []float64
	if in.Cubic {
		vPP = expect.MargMargValue(a, next.VPPFunc)
	}
	if err = allFinite(vP, vPP); err != nil {
		return Solution{}, fmt.Errorf("SolveOnePeriod: end-of-period marginal value: %w", err)
	}

	worst := dstn.WorstIncPrb()
	if worst <= 0 {
		return Solution{}, fmt.Errorf("SolveOnePeriod: worst income event has zero probability: %w", ErrNumericalDegeneracy)
	}
	patFac := math.Pow(in.Rfree*discFacEff, 1/rho) / in.Rfree
	b := Bounds{
		HNrm:   in.PermGroFac / in.Rfree * (dstn.ExpectedIncome() + next.HNrm),
		MPCMin: 1 / (1 + patFac/next.MPCMin),
		MPCMax: 1 / (1 + math.Pow(worst, 1/rho)*patFac/next.MPCMax),
	}
	b.MPCMaxEff = b.MPCMax
	if nat < mNrmMin {
		b.MPCMaxEff = 1
	}

	c, m := InvertEndOfPrd(u, a, vP)
	unc, err := ConsumptionFunc(u, nat, c, m, vPP, b)
	if err != nil {
		return Solution{}, fmt.Errorf("SolveOnePeriod: %w: %w", err, ErrNumericalDegeneracy)
	}
	cFunc, vPFunc, vPPFunc := Policy(u, unc, mNrmMin, in.Cubic)

	sol := Solution{
		CFunc:       cFunc,
		VPFunc:      vPFunc,
		VPPFunc:     vPPFunc,
		MNrmMin:     mNrmMin,
		BoroCnstNat: nat,
		HNrm:        b.HNrm,
		MPCMin:      b.MPCMin,
		MPCMax:      b.MPCMaxEff,
	}

	if in.VFunc {
		v := expect.Value(a, next.VFunc)
		endOfPrdV, err := ValueInterp(u, nat, a, v, vP)
		if err != nil {
			return Solution{}, fmt.Errorf("SolveOnePeriod: %w: %w", err, ErrNumericalDegeneracy)
		}
		vFunc, err := ValueFuncFromPolicy(u, mNrmMin, in.AXtraGrid, cFunc, endOfPrdV.Eval, b)
		if err != nil {
			return Solution{}, fmt.Errorf("SolveOnePeriod: %w: %w", err, ErrNumericalDegeneracy)
		}
		sol.VFunc = vFunc
	}

	return sol, nil
}

// allFinite reports ErrNumericalDegeneracy for the first NaN or ±Inf entry.
func allFinite(xs ...[]float64) error {
	for _, x := range xs {
		for k, v := range x {
			if !finite(v) {
				return fmt.Errorf("a[%d]=%g: %w", k, v, ErrNumericalDegeneracy)
			}
		}
	}

	return nil
}
