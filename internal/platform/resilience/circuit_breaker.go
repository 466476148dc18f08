package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is called outside the breaker lock after every transition.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker guards a remote dependency. It opens after a run of
// consecutive failures and lets a bounded number of trial requests through once the
// open timeout has elapsed.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state     CircuitState
	failures  int
	openedAt  time.Time
	trials    int
	trialWins int
	onChange  StateChangeFunc
	now       func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// OnStateChange registers fn for state transitions, replacing any earlier one.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Execute runs fn when the breaker allows it. Only errors classified by
// isFailure count against the breaker; a nil classifier counts every error.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}

func (b *CircuitBreaker) Allow() error {
	var err error
	b.update(func() {
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.openTimeout {
				err = ErrCircuitOpen
				return
			}
			b.setState(CircuitStateHalfOpen)
		}
		if b.state == CircuitStateHalfOpen {
			if b.trials >= b.halfOpenMaxReq {
				err = ErrCircuitOpen
				return
			}
			b.trials++
		}
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			if b.trials > 0 {
				b.trials--
			}
			b.trialWins++
			if b.trialWins >= b.halfOpenMaxReq && b.trials == 0 {
				b.setState(CircuitStateClosed)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.failureThreshold {
				b.setState(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.setState(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
	})
}

// State reports half-open as soon as the open timeout has elapsed, even
// before the next Allow moves the breaker there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) update(fn func()) {
	b.mu.Lock()
	from := b.state
	fn()
	to := b.state
	notify := b.onChange
	b.mu.Unlock()

	if notify != nil && from != to {
		notify(from, to)
	}
}

// setState resets the counters owned by the state being entered. Callers
// hold b.mu.
func (b *CircuitBreaker) setState(state CircuitState) {
	b.state = state
	b.trials = 0
	b.trialWins = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
