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

// CircuitBreaker guards an upstream that punishes bursts. The fbref client
// trips it on rate-limit answers so the remaining catalog entries fail fast
// instead of extending the upstream ban.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	maxOpenTimeout   time.Duration
	halfOpenMaxReq   int

	state               CircuitState
	consecutiveFailures int
	openUntil           time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
	now                 func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		maxOpenTimeout:   cfg.MaxOpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports ErrCircuitOpen while the breaker is open or its half-open
// probe budget is spent.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Before(b.openUntil) {
			return ErrCircuitOpen
		}
		b.toHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.halfOpenInFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.halfOpenInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.halfOpenMaxReq && b.halfOpenInFlight == 0 {
			b.toClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.failureThreshold {
			b.toOpen(b.openTimeout)
		}
	case CircuitStateHalfOpen:
		b.toOpen(b.openTimeout)
	case CircuitStateOpen:
		b.toOpen(b.openTimeout)
	}
}

// Trip opens the breaker immediately regardless of the failure count.
func (b *CircuitBreaker) Trip() {
	b.TripFor(0)
}

// TripFor opens the breaker for the upstream's Retry-After hint, clamped to
// [OpenTimeout, MaxOpenTimeout]. An earlier, longer block is never shortened.
func (b *CircuitBreaker) TripFor(hint time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wait := min(max(hint, b.openTimeout), b.maxOpenTimeout)
	if b.state == CircuitStateOpen && b.openUntil.After(b.now().Add(wait)) {
		return
	}
	b.toOpen(wait)
}

// RetryAfter is the remaining open time, zero when requests are allowed.
func (b *CircuitBreaker) RetryAfter() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != CircuitStateOpen {
		return 0
	}
	return max(b.openUntil.Sub(b.now()), 0)
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && !b.now().Before(b.openUntil) {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) toClosed() {
	b.state = CircuitStateClosed
	b.consecutiveFailures = 0
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	b.openUntil = time.Time{}
}

func (b *CircuitBreaker) toOpen(wait time.Duration) {
	b.state = CircuitStateOpen
	b.openUntil = b.now().Add(wait)
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}

func (b *CircuitBreaker) toHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}
