package resilience

import "time"

// CircuitBreakerConfig tunes how long the fetcher backs off after the stats
// site starts refusing requests.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	// OpenTimeout is the minimum time the breaker stays open.
	OpenTimeout time.Duration
	// MaxOpenTimeout caps a Retry-After hint from the upstream.
	MaxOpenTimeout time.Duration
	HalfOpenMaxReq int
}

// DefaultCircuitBreakerConfig opens on the first 429. fbref blocks for far
// longer than a transient outage, and a Retry-After of up to an hour is
// honoured.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      10 * time.Minute,
		MaxOpenTimeout:   time.Hour,
		HalfOpenMaxReq:   1,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.HalfOpenMaxReq = max(cfg.HalfOpenMaxReq, 1)
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.MaxOpenTimeout <= 0 {
		cfg.MaxOpenTimeout = defaults.MaxOpenTimeout
	}
	cfg.MaxOpenTimeout = max(cfg.MaxOpenTimeout, cfg.OpenTimeout)
	return cfg
}
