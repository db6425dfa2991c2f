package resilience

import (
	"context"
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

// CircuitBreaker stops calling a remote dependency after consecutive failures
// and lets a single trial call through once the cool-down elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	cfg CircuitBreakerConfig

	state    CircuitState
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// Execute runs fn when the breaker admits the call and records its outcome.
// Context cancellation is not counted as a dependency failure.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil || !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.record(true)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b.release()
	default:
		b.record(false)
	}
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = CircuitStateHalfOpen
		b.probing = false
	}
	if b.state == CircuitStateHalfOpen {
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
	}
	return nil
}

func (b *CircuitBreaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if success {
		b.state = CircuitStateClosed
		b.failures = 0
		return
	}

	b.failures++
	if b.state == CircuitStateHalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.state = CircuitStateOpen
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) release() {
	b.mu.Lock()
	b.probing = false
	b.mu.Unlock()
}
