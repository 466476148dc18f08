package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/resilience"
)

const defaultEntryBytes = 64

type entry[V any] struct {
	value     V
	expiresAt time.Time
	size      int
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Stats is a point-in-time view of one store, used for operational endpoints.
type Stats struct {
	Name        string        `json:"name"`
	Entries     int           `json:"entries"`
	ApproxBytes int64         `json:"approx_bytes"`
	TTL         time.Duration `json:"ttl"`
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mostly for simulated-time tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Store is a TTL key/value cache. Expired entries are evicted lazily on read
// or by SweepExpired; nothing runs in the background unless a Sweeper is
// started for the store.
type Store[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
	sizer   func(K, V) int
	flight  resilience.SingleFlight[K, V]
}

func NewStore[K comparable, V any](name string, ttl time.Duration, opts ...Option) *Store[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[K, V]{
		name:    name,
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     o.now,
	}
}

// SizeWith sets the per-entry size estimator used by Stats.
func (s *Store[K, V]) SizeWith(fn func(K, V) int) *Store[K, V] {
	s.mu.Lock()
	s.sizer = fn
	s.mu.Unlock()
	return s
}

func (s *Store[K, V]) Name() string {
	return s.name
}

func (s *Store[K, V]) TTL() time.Duration {
	return s.ttl
}

func (s *Store[K, V]) Get(_ context.Context, key K) (V, bool) {
	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expired(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores value under the store's default TTL.
func (s *Store[K, V]) Set(ctx context.Context, key K, value V) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores value with an explicit TTL. A ttl <= 0 never expires.
func (s *Store[K, V]) SetWithTTL(_ context.Context, key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	size := defaultEntryBytes
	if s.sizer != nil {
		size = s.sizer(key, value)
	}
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
		size:      size,
	}
	s.mu.Unlock()
}

func (s *Store[K, V]) Delete(_ context.Context, key K) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every entry and returns how many were removed.
func (s *Store[K, V]) Clear() int {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[K]entry[V])
	s.mu.Unlock()
	return n
}

// SweepExpired evicts expired entries and returns how many were removed.
func (s *Store[K, V]) SweepExpired() int {
	now := s.now()
	removed := 0

	s.mu.Lock()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()

	return removed
}

// Len counts live entries only.
func (s *Store[K, V]) Len() int {
	return s.Stats().Entries
}

func (s *Store[K, V]) Stats() Stats {
	now := s.now()
	out := Stats{Name: s.name, TTL: s.ttl}

	s.mu.RLock()
	for _, e := range s.entries {
		if e.expired(now) {
			continue
		}
		out.Entries++
		out.ApproxBytes += int64(e.size)
	}
	s.mu.RUnlock()

	return out
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are returned and never cached.
func (s *Store[K, V]) GetOrLoad(ctx context.Context, key K, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, fmt.Errorf("loader is required")
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return loaded, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return value, nil
}
