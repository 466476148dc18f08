package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestMap_KeepsOrderAndIsolatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	keys := []int{1, 2, 3, 4, 5}
	results := Map(context.Background(), keys, 2, func(_ context.Context, k int) (int, error) {
		if k == 3 {
			return 0, boom
		}
		time.Sleep(time.Duration(5-k) * time.Millisecond)
		return k * 10, nil
	})

	if len(results) != len(keys) {
		t.Fatalf("expected %d results, got %d", len(keys), len(results))
	}
	for i, r := range results {
		if r.Key != keys[i] {
			t.Fatalf("result %d out of order: key=%d", i, r.Key)
		}
		if r.Key == 3 {
			if !errors.Is(r.Err, boom) {
				t.Fatalf("expected boom for key 3, got %v", r.Err)
			}
			continue
		}
		if !r.OK() || r.Value != r.Key*10 {
			t.Fatalf("unexpected result for key %d: %+v", r.Key, r)
		}
	}

	ok, failed := Partition(results)
	if len(ok) != 4 || len(failed) != 1 {
		t.Fatalf("unexpected partition sizes: ok=%d failed=%d", len(ok), len(failed))
	}
	if _, exists := failed[3]; !exists {
		t.Fatalf("expected key 3 in failures")
	}
}

func TestMap_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	keys := make([]int, 20)
	for i := range keys {
		keys[i] = i
	}

	Map(context.Background(), keys, 3, func(_ context.Context, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			current := peak.Load()
			if n <= current || peak.CompareAndSwap(current, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	if got := peak.Load(); got > 3 {
		t.Fatalf("expected at most 3 concurrent calls, saw %d", got)
	}
}

func TestMap_RecoversPanics(t *testing.T) {
	t.Parallel()

	results := Map(context.Background(), []string{"ok", "bad"}, 0, func(_ context.Context, k string) (string, error) {
		if k == "bad" {
			panic("nil roster")
		}
		return k, nil
	})

	if results[0].Err != nil {
		t.Fatalf("unexpected error for ok key: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("expected panic to surface as error")
	}
}

func TestMap_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := Map(context.Background(), nil, 4, func(context.Context, int) (int, error) { return 0, nil }); got != nil {
		t.Fatalf("expected nil results for empty input, got %v", got)
	}
}
