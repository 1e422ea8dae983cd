// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"
	"math"
)

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// ValidateGrid checks that aXtra has at least two points, all finite,
// positive and strictly increasing.
func ValidateGrid(aXtra []float64) error {
	if len(aXtra) < 2 {
		return fmt.Errorf("aXtraGrid has %d points, want at least 2: %w", len(aXtra), ErrInvalidParameter)
	}
	for k, x := range aXtra {
		if !finite(x) || x <= 0 {
			return fmt.Errorf("aXtraGrid[%d]=%g must be finite and > 0: %w", k, x, ErrInvalidParameter)
		}
		if k > 0 && x <= aXtra[k-1] {
			return fmt.Errorf("aXtraGrid[%d]=%g not increasing: %w", k, x, ErrInvalidParameter)
		}
	}

	return nil
}

// ValidatePreferences checks discounting and survival.
func ValidatePreferences(discFac, livPrb float64) error {
	if !finite(discFac) || discFac <= 0 {
		return fmt.Errorf("DiscFac=%g must be > 0: %w", discFac, ErrInvalidParameter)
	}
	if !finite(livPrb) || livPrb <= 0 || livPrb > 1 {
		return fmt.Errorf("LivPrb=%g must be in (0,1]: %w", livPrb, ErrInvalidParameter)
	}

	return nil
}

// ValidateReturns checks an interest factor and a growth factor.
func ValidateReturns(rfree, permGroFac float64) error {
	if !finite(rfree) || rfree <= 0 {
		return fmt.Errorf("Rfree=%g must be > 0: %w", rfree, ErrInvalidParameter)
	}
	if !finite(permGroFac) || permGroFac <= 0 {
		return fmt.Errorf("PermGroFac=%g must be > 0: %w", permGroFac, ErrInvalidParameter)
	}

	return nil
}

// ValidateArtificial checks an optional artificial borrowing constraint.
func ValidateArtificial(boroCnstArt *float64) error {
	if boroCnstArt != nil && !finite(*boroCnstArt) {
		return fmt.Errorf("BoroCnstArt=%g must be finite: %w", *boroCnstArt, ErrInvalidParameter)
	}

	return nil
}
