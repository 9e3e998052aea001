// Package breaker implements a circuit breaker for one remote channel.
package breaker

import (
	"sync"
	"time"
)

// State состояние circuit breaker
type State string

const (
	StateClosed   State = "CLOSED"
	StateOpen     State = "OPEN"
	StateHalfOpen State = "HALF_OPEN"
)

// Config holds breaker thresholds.
type Config struct {
	ResetTimeout     time.Duration `mapstructure:"reset_timeout"`
	FailureThreshold int           `mapstructure:"failure_threshold"`
	HalfOpenRequests int           `mapstructure:"half_open_requests"`
}

// DefaultConfig returns the default breaker thresholds.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		ResetTimeout:     60 * time.Second,
		HalfOpenRequests: 3,
	}
}

// CircuitBreaker tracks consecutive failures and suppresses attempts while open.
type CircuitBreaker struct {
	lastFailureTime time.Time
	now             func() time.Time
	state           State
	cfg             Config
	failureCount    int
	halfOpenCount   int
	mu              sync.Mutex
}

// New creates a closed CircuitBreaker.
func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultConfig().FailureThreshold
	}
	if cfg.HalfOpenRequests <= 0 {
		cfg.HalfOpenRequests = DefaultConfig().HalfOpenRequests
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// CanAttempt reports whether a call may be made now.
// In OPEN it moves to HALF_OPEN once the reset window has elapsed.
func (cb *CircuitBreaker) CanAttempt() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailureTime) <= cb.cfg.ResetTimeout {
			return false
		}
		cb.state = StateHalfOpen
		cb.halfOpenCount = 1
		return true
	case StateHalfOpen:
		// Ограничиваем число пробных запросов
		if cb.halfOpenCount >= cb.cfg.HalfOpenRequests {
			return false
		}
		cb.halfOpenCount++
		return true
	default:
		return false
	}
}

// RecordSuccess closes the breaker and resets the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.halfOpenCount = 0
	cb.state = StateClosed
}

// RecordFailure counts a failure and opens the breaker at the threshold.
// Any failure while half-open reopens it.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.state == StateHalfOpen || cb.failureCount >= cb.cfg.FailureThreshold {
		cb.state = StateOpen
		cb.halfOpenCount = 0
	}
}

// State returns the current state without side effects.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}
