package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// JitterFactor is the maximum share by which jitter widens a delay.
const JitterFactor = 0.3

// unknownRetryLimit bounds retries of unclassified errors.
const unknownRetryLimit = 2

// Config is the process-wide retry policy. It is never mutated after construction.
type Config struct {
	BaseDelay         time.Duration `mapstructure:"base_delay"`
	MaxDelay          time.Duration `mapstructure:"max_delay"`
	BackoffMultiplier float64       `mapstructure:"backoff_multiplier"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	JitterEnabled     bool          `mapstructure:"jitter_enabled"`
}

// DefaultConfig returns the default retry policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       5,
		BaseDelay:         time.Second,
		MaxDelay:          time.Minute,
		BackoffMultiplier: 2,
		JitterEnabled:     true,
	}
}

// IsRetryable decides whether a failure of errorType on attemptNumber may be retried.
// attemptNumber counts attempts already made.
func IsRetryable(errorType ErrorType, attemptNumber int, cfg Config) bool {
	if attemptNumber >= cfg.MaxAttempts {
		return false
	}

	switch errorType {
	case ErrorNetwork, ErrorRateLimit, ErrorServer:
		return true
	case ErrorAuth, ErrorClient, ErrorValidation:
		// Постоянная ошибка: повтор не поможет
		return false
	case ErrorUnknown:
		return attemptNumber < unknownRetryLimit
	default:
		return false
	}
}

// CalculateRetryDelay returns how long to wait before the next attempt.
// A known rate limit reset time wins over exponential backoff.
func CalculateRetryDelay(errorType ErrorType, attemptNumber int, cfg Config, rateLimitReset time.Time) time.Duration {
	return calculateRetryDelay(errorType, attemptNumber, cfg, rateLimitReset, time.Now(), rand.Float64)
}

func calculateRetryDelay(errorType ErrorType, attemptNumber int, cfg Config, rateLimitReset, now time.Time, random func() float64) time.Duration {
	if errorType == ErrorRateLimit && !rateLimitReset.IsZero() {
		wait := rateLimitReset.Sub(now)
		if wait < cfg.BaseDelay {
			wait = cfg.BaseDelay
		}
		return wait
	}

	if attemptNumber < 1 {
		attemptNumber = 1
	}

	multiplier := cfg.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}

	// base * multiplier^(attempt-1), без переполнения
	delay := float64(cfg.BaseDelay) * math.Pow(multiplier, float64(attemptNumber-1))
	if delay > float64(cfg.MaxDelay) || math.IsInf(delay, 0) || math.IsNaN(delay) {
		delay = float64(cfg.MaxDelay)
	}

	if cfg.JitterEnabled {
		delay += delay * JitterFactor * random()
	}

	return time.Duration(delay)
}
