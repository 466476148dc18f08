// Package parallel runs independent lookups concurrently and keeps every
// item's outcome, so one failing key never hides the others.
package parallel

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// DefaultMaxParallel bounds fan-out when callers pass a non-positive limit.
const DefaultMaxParallel = 8

// Result is the outcome for one input key.
type Result[K any, V any] struct {
	Index int
	Key   K
	Value V
	Err   error
}

func (r Result[K, V]) OK() bool {
	return r.Err == nil
}

// Map calls fn for every key with at most maxParallel calls in flight and
// returns one Result per key in input order. Panics inside fn are captured as
// that key's error.
func Map[K any, V any](ctx context.Context, keys []K, maxParallel int, fn func(context.Context, K) (V, error)) []Result[K, V] {
	if len(keys) == 0 {
		return nil
	}
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	p := pool.NewWithResults[Result[K, V]]().WithMaxGoroutines(maxParallel)
	for i, key := range keys {
		p.Go(func() Result[K, V] {
			out := Result[K, V]{Index: i, Key: key}
			if err := ctx.Err(); err != nil {
				out.Err = err
				return out
			}

			var catcher panics.Catcher
			catcher.Try(func() {
				out.Value, out.Err = fn(ctx, key)
			})
			if recovered := catcher.Recovered(); recovered != nil {
				out.Err = fmt.Errorf("recovered panic: %w", recovered.AsError())
			}
			return out
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// Partition splits results into successes and failures keyed by input key.
func Partition[K comparable, V any](results []Result[K, V]) (map[K]V, map[K]error) {
	ok := make(map[K]V, len(results))
	failed := make(map[K]error)
	for _, r := range results {
		if r.Err != nil {
			failed[r.Key] = r.Err
			continue
		}
		ok[r.Key] = r.Value
	}
	return ok, failed
}
