// SPDX-License-Identifier: MIT

package egm

import (
	"fmt"
	"math"
	"sort"
)

// MakeGridExpMult returns n points between lo and hi that are denser near lo.
// With nest > 0 the points are equally spaced after applying x ↦ log(x+1)
// nest times; with nest == 0 they are equally spaced in log(x).
// Errors: ErrInvalidParameter for n < 2, lo >= hi, or lo <= 0 when nest == 0.
func MakeGridExpMult(lo, hi float64, n, nest int) ([]float64, error) {
	if n < 2 || !(lo < hi) || nest < 0 || (nest == 0 && lo <= 0) || (nest > 0 && lo <= -1) {
		return nil, fmt.Errorf("MakeGridExpMult(%g, %g, %d, %d): %w", lo, hi, n, nest, ErrInvalidParameter)
	}
	grid := make([]float64, n)
	if nest == 0 {
		llo, lhi := math.Log(lo), math.Log(hi)
		step := (lhi - llo) / float64(n-1)
		for k := range grid {
			grid[k] = math.Exp(llo + step*float64(k))
		}
		grid[0], grid[n-1] = lo, hi
		return grid, nil
	}
	llo, lhi := lo, hi
	for j := 0; j < nest; j++ {
		llo, lhi = math.Log(llo+1), math.Log(lhi+1)
	}
	step := (lhi - llo) / float64(n-1)
	for k := range grid {
		x := llo + step*float64(k)
		for j := 0; j < nest; j++ {
			x = math.Exp(x) - 1
		}
		grid[k] = x
	}
	grid[0], grid[n-1] = lo, hi

	return grid, nil
}

// AssetsAboveMinimum builds the "aXtra" grid: a multi-exponential grid plus
// extra points, sorted with duplicates and non-positive points removed.
func AssetsAboveMinimum(lo, hi float64, n, nest int, extra []float64) ([]float64, error) {
	grid, err := MakeGridExpMult(lo, hi, n, nest)
	if err != nil {
		return nil, err
	}
	for _, x := range extra {
		if x > 0 && !math.IsInf(x, 0) {
			grid = append(grid, x)
		}
	}
	sort.Float64s(grid)
	out := grid[:1]
	for _, x := range grid[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}

	return out, nil
}
