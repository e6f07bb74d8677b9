package dynamo

import (
	"golang.org/x/sync/errgroup"
)

// ParallelFor calls fn over contiguous chunks of [0, n) using at most
// workers goroutines and returns the first error. Chunks are disjoint, so fn
// may write to per-index output slots without locking.
func ParallelFor(n, workers int, fn func(start, end int) error) error {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		s, e := start, end
		g.Go(func() error {
			return fn(s, e)
		})
	}
	return g.Wait()
}
