// Package enrich provides bounded-parallelism enrichment of extracted
// cards, including the secondary metadata-image lookup used when primary
// extraction yielded no image.
package enrich

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item using at most limit concurrent workers and
// returns results aligned with the input: out[i] is fn's result for
// items[i] regardless of completion order.
//
// Workers share a single atomically incremented claim cursor, so every
// index is processed exactly once and no two workers process the same
// index. A failure inside fn must be absorbed by fn itself (converted to a
// safe zero value); the only early exit is context cancellation, which
// leaves unclaimed slots at their zero value.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) R) []R {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out
	}

	workers := limit
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	var cursor atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := int(cursor.Add(1)) - 1
				if i >= len(items) {
					return nil
				}
				out[i] = fn(gctx, items[i])
			}
		})
	}
	_ = g.Wait()

	return out
}
