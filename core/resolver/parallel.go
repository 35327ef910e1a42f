package resolver

import (
	"context"
	"sync"

	"github.com/FocuswithJustin/almanac/core/errors"
)

// partial is one worker's share of a ParallelMin reduction.
type partial struct {
	best int64
	seen bool
	err  error
}

// ParallelMin applies fn to every item using up to workers goroutines and
// returns the smallest result. Workers keep their own running minimum and the
// partial results are combined at the end, so the answer does not depend on
// scheduling. The first error, or ctx cancellation, aborts the reduction.
func ParallelMin[T any](ctx context.Context, items []T, workers int, fn func(T) (int64, error)) (int64, error) {
	if len(items) == 0 {
		return 0, errors.NewValidation("items", "nothing to resolve")
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	if workers == 1 {
		var best int64
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			v, err := fn(item)
			if err != nil {
				return 0, err
			}
			if i == 0 || v < best {
				best = v
			}
		}
		return best, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan T, workers*2)
	results := make(chan partial, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			var p partial
			for {
				select {
				case <-ctx.Done():
					results <- p
					return
				case item, ok := <-jobs:
					if !ok {
						results <- p
						return
					}
					v, err := fn(item)
					if err != nil {
						p.err = err
						cancel()
						results <- p
						return
					}
					if !p.seen || v < p.best {
						p.best, p.seen = v, true
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case jobs <- item:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		best     int64
		seen     bool
		firstErr error
	)
	for p := range results {
		if p.err != nil && firstErr == nil {
			firstErr = p.err
		}
		if p.seen && (!seen || p.best < best) {
			best, seen = p.best, true
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	if err := parent.Err(); err != nil {
		return 0, err
	}
	return best, nil
}
