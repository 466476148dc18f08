package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 11, 17, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStore_SetGetExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore[string, string]("players", time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	store.SetWithTTL(ctx, "4046", "Patrick Mahomes", 30*time.Minute)
	got, ok := store.Get(ctx, "4046")
	if !ok || got != "Patrick Mahomes" {
		t.Fatalf("expected immediate hit, got %q ok=%v", got, ok)
	}

	clock.Advance(30*time.Minute - time.Nanosecond)
	if _, ok := store.Get(ctx, "4046"); !ok {
		t.Fatalf("expected hit just before ttl")
	}

	clock.Advance(time.Nanosecond)
	if _, ok := store.Get(ctx, "4046"); ok {
		t.Fatalf("expected miss once ttl elapsed")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected lazy eviction on read, len=%d", got)
	}
}

func TestStore_SetUsesDefaultTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore[int, int]("numbers", 5*time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	store.Set(ctx, 1, 10)
	clock.Advance(5 * time.Minute)
	if _, ok := store.Get(ctx, 1); ok {
		t.Fatalf("expected default ttl expiry")
	}
}

func TestStore_SweepExpiredAndClear(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore[string, int]("scoring", time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)
	store.SetWithTTL(ctx, "forever", 3, 0)

	clock.Advance(2 * time.Minute)
	if removed := store.SweepExpired(); removed != 2 {
		t.Fatalf("expected 2 expired entries removed, got %d", removed)
	}
	if got, ok := store.Get(ctx, "forever"); !ok || got != 3 {
		t.Fatalf("expected non-expiring entry to survive sweep")
	}

	if removed := store.Clear(); removed != 1 {
		t.Fatalf("expected clear to remove 1 entry, got %d", removed)
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected empty store after clear, len=%d", got)
	}
}

func TestStore_StatsUsesSizer(t *testing.T) {
	t.Parallel()

	store := NewStore[string, string]("players", time.Minute).
		SizeWith(func(k, v string) int { return len(k) + len(v) })
	ctx := context.Background()

	store.Set(ctx, "id", "name")
	store.Set(ctx, "id2", "longer-name")

	stats := store.Stats()
	if stats.Name != "players" {
		t.Fatalf("unexpected stats name: %s", stats.Name)
	}
	if stats.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", stats.Entries)
	}
	if stats.ApproxBytes != int64(6+14) {
		t.Fatalf("unexpected approx bytes: %d", stats.ApproxBytes)
	}
}

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string, string]("directory", time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "nfl", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string, string]("directory", time.Minute)
	var calls atomic.Int32
	boom := errors.New("provider down")

	failing := func(context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected failed loads to be retried, calls=%d", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
