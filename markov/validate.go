// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consmarkov/egm"
	"github.com/katalvlaran/consmarkov/matrix"
	"github.com/katalvlaran/consmarkov/utility"
)

// validate runs every input check before any numerics and returns the
// utility kernel and the reachability of each next state.
func validate(in Inputs) (utility.CRRA, []bool, error) {
	u, err := utility.NewCRRA(in.CRRA)
	if err != nil {
		return utility.CRRA{}, nil, fmt.Errorf("%w: %w", err, ErrInvalidParameter)
	}
	if err = matrix.ValidateStochastic(in.MrkvArray, matrix.DefaultEpsilon); err != nil {
		return u, nil, fmt.Errorf("MrkvArray: %w: %w", err, ErrInvalidParameter)
	}
	n := in.MrkvArray.Rows()
	if in.Next == nil {
		return u, nil, fmt.Errorf("next-period solution is nil: %w", ErrInvalidParameter)
	}
	next := in.Next
	lengths := []struct {
		name string
		got  int
	}{
		{"IncomeDstn", len(in.IncomeDstn)},
		{"Rfree", len(in.Rfree)},
		{"PermGroFac", len(in.PermGroFac)},
		{"Next.MNrmMin", len(next.MNrmMin)},
		{"Next.HNrm", len(next.HNrm)},
		{"Next.MPCMin", len(next.MPCMin)},
		{"Next.MPCMax", len(next.MPCMax)},
		{"Next.VPFunc", len(next.VPFunc)},
	}
	for _, l := range lengths {
		if l.got != n {
			return u, nil, fmt.Errorf("%s has %d states, MrkvArray has %d: %w", l.name, l.got, n, ErrInvalidParameter)
		}
	}
	if err = egm.ValidatePreferences(in.DiscFac, in.LivPrb); err != nil {
		return u, nil, err
	}
	if err = egm.ValidateArtificial(in.BoroCnstArt); err != nil {
		return u, nil, err
	}
	if err = egm.ValidateGrid(in.AXtraGrid); err != nil {
		return u, nil, err
	}
	if in.VFunc && u.IsLog() {
		return u, nil, fmt.Errorf("value function with log utility: %w", ErrConfigConflict)
	}

	reach, err := matrix.Reachable(in.MrkvArray)
	if err != nil {
		return u, nil, fmt.Errorf("MrkvArray: %w: %w", err, ErrInvalidParameter)
	}
	for j := 0; j < n; j++ {
		if !reach[j] {
			continue
		}
		if err = in.IncomeDstn[j].Validate(); err != nil {
			return u, nil, fmt.Errorf("IncomeDstn[%d]: %w: %w", j, err, ErrInvalidParameter)
		}
		if err = egm.ValidateReturns(in.Rfree[j], in.PermGroFac[j]); err != nil {
			return u, nil, fmt.Errorf("state %d: %w", j, err)
		}
		for _, v := range []float64{next.MNrmMin[j], next.HNrm[j], next.MPCMin[j], next.MPCMax[j]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return u, nil, fmt.Errorf("next-period bounds of state %d are not finite: %w", j, ErrInvalidParameter)
			}
		}
		if !(next.MPCMin[j] > 0) || !(next.MPCMax[j] > 0) {
			return u, nil, fmt.Errorf("next-period MPC bounds of state %d must be > 0: %w", j, ErrInvalidParameter)
		}
		if next.VPFunc[j] == nil {
			return u, nil, fmt.Errorf("next VPFunc[%d] is nil: %w", j, ErrInvalidParameter)
		}
		if in.Cubic && (j >= len(next.VPPFunc) || next.VPPFunc[j] == nil) {
			return u, nil, fmt.Errorf("cubic interpolation needs next VPPFunc[%d]: %w", j, ErrConfigConflict)
		}
		if in.VFunc && (j >= len(next.VFunc) || next.VFunc[j] == nil) {
			return u, nil, fmt.Errorf("value function needs next VFunc[%d]: %w", j, ErrConfigConflict)
		}
	}

	return u, reach, nil
}
