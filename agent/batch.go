// SPDX-License-Identifier: MIT

package agent

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolveTypes solves independent types concurrently, at most GOMAXPROCS at a
// time. Results are indexed like types. The first error cancels the
// remaining solves and is returned.
func SolveTypes(ctx context.Context, types []*Type, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]Result, len(types))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			res, err := t.Solve(gctx, logger)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("batch solve complete", zap.Int("types", len(types)))

	return out, nil
}
