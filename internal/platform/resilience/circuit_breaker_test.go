package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, open time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      open,
		HalfOpenMaxReq:   1,
	})
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_TripAndRetryAfter(t *testing.T) {
	b, now := newTestBreaker(5, time.Minute)

	if got := b.RetryAfter(); got != 0 {
		t.Fatalf("expected zero retry-after while closed, got %s", got)
	}

	b.Trip()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected tripped breaker to reject, got %v", err)
	}

	*now = now.Add(20 * time.Second)
	if got := b.RetryAfter(); got != 40*time.Second {
		t.Fatalf("unexpected retry-after: %s", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, time.Second)

	b.RecordFailure()
	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second half-open request rejected, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopen after half-open failure, got %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold != defaults.FailureThreshold || cfg.OpenTimeout != defaults.OpenTimeout || cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
	if cfg.MaxOpenTimeout != defaults.MaxOpenTimeout {
		t.Fatalf("expected default max open timeout, got %s", cfg.MaxOpenTimeout)
	}

	long := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{OpenTimeout: 2 * time.Hour})
	if long.MaxOpenTimeout != 2*time.Hour {
		t.Fatalf("max open timeout must not undercut open timeout, got %s", long.MaxOpenTimeout)
	}
	if !cfg.Enabled {
		t.Fatalf("normalize must not change Enabled")
	}
}

func TestCircuitBreaker_TripForClampsHint(t *testing.T) {
	tests := []struct {
		name string
		hint time.Duration
		want time.Duration
	}{
		{name: "no hint uses open timeout", hint: 0, want: time.Minute},
		{name: "short hint raised to open timeout", hint: 5 * time.Second, want: time.Minute},
		{name: "hint within bounds", hint: 20 * time.Minute, want: 20 * time.Minute},
		{name: "hint capped", hint: 6 * time.Hour, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBreaker(1, time.Minute)
			b.TripFor(tt.hint)
			if got := b.RetryAfter(); got != tt.want {
				t.Fatalf("RetryAfter() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCircuitBreaker_TripForKeepsLongerBlock(t *testing.T) {
	b, now := newTestBreaker(1, time.Minute)

	b.TripFor(30 * time.Minute)
	*now = now.Add(time.Minute)
	b.Trip()

	if got := b.RetryAfter(); got != 29*time.Minute {
		t.Fatalf("expected the earlier block to stand, got %s", got)
	}
}
