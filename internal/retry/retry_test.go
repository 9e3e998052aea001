package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpError имитирует ошибку HTTP клиента
type httpError struct {
	retryAt time.Time
	code    string
	status  int
}

func (e *httpError) Error() string      { return fmt.Sprintf("status %d (%s)", e.status, e.code) }
func (e *httpError) StatusCode() int    { return e.status }
func (e *httpError) ErrorCode() string  { return e.code }
func (e *httpError) RetryAt() time.Time { return e.retryAt }

func TestClassify_Status(t *testing.T) {
	tests := []struct {
		expected ErrorType
		status   int
	}{
		{ErrorAuth, 401},
		{ErrorAuth, 403},
		{ErrorRateLimit, 429},
		{ErrorServer, 500},
		{ErrorServer, 503},
		{ErrorServer, 599},
		{ErrorClient, 400},
		{ErrorClient, 404},
		{ErrorClient, 409},
		{ErrorClient, 422},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := fmt.Errorf("push failed: %w", &httpError{status: tt.status})
			assert.Equal(t, tt.expected, Classify(err))
			got, ok := classifyStatus(tt.status)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassify_ProviderCodes(t *testing.T) {
	// Статус < 400 не классифицируется, решают коды провайдера
	assert.Equal(t, ErrorAuth, Classify(&httpError{status: 200, code: "AccessDeniedException"}))
	assert.Equal(t, ErrorRateLimit, Classify(&httpError{status: 200, code: "ProvisionedThroughputExceededException"}))
	assert.Equal(t, ErrorRateLimit, Classify(&httpError{status: 200, code: "ThrottlingException"}))
	assert.Equal(t, ErrorUnknown, Classify(&httpError{status: 200, code: "Whatever"}))

	// HTTP статус имеет приоритет над кодом провайдера
	assert.Equal(t, ErrorServer, Classify(&httpError{status: 500, code: "AccessDeniedException"}))
}

func TestClassify_Network(t *testing.T) {
	tests := []struct {
		err  error
		name string
	}{
		{name: "connection refused errno", err: fmt.Errorf("dial: %w", syscall.ECONNREFUSED)},
		{name: "deadline", err: fmt.Errorf("request: %w", context.DeadlineExceeded)},
		{name: "url error", err: &url.Error{Op: "Post", URL: "http://x", Err: errors.New("boom")}},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "example.invalid"}},
		{name: "message signature", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")},
		{name: "flattened eof", err: errors.New(`Post "http://x/api/v1/sync": EOF`)},
		{name: "unexpected eof text", err: errors.New("read body: unexpected EOF")},
		{name: "eof", err: fmt.Errorf("read: %w", io.EOF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ErrorNetwork, Classify(tt.err))
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	assert.Equal(t, ErrorUnknown, Classify(errors.New("something odd")))
	assert.Equal(t, ErrorUnknown, Classify(nil))
	// Слово с "eof" внутри не сбой транспорта
	assert.Equal(t, ErrorUnknown, Classify(errors.New("geofence payload rejected")))
}

func TestClassifyStatus_BelowClientErrors(t *testing.T) {
	for _, status := range []int{0, 200, 304} {
		_, ok := classifyStatus(status)
		assert.False(t, ok, status)
	}
}

func TestClassify_SyncError(t *testing.T) {
	assert.Equal(t, ErrorValidation, Classify(NewValidationError("entity type is required")))

	wrapped := Wrap(&httpError{status: 401}, "push")
	assert.Equal(t, ErrorAuth, wrapped.Type)
	assert.Equal(t, ErrorAuth, Classify(wrapped))
}

func TestIsRetryable(t *testing.T) {
	cfg := DefaultConfig()

	for n := 0; n < cfg.MaxAttempts+3; n++ {
		assert.False(t, IsRetryable(ErrorAuth, n, cfg), "AUTH must never retry (n=%d)", n)
		assert.False(t, IsRetryable(ErrorClient, n, cfg), "CLIENT must never retry (n=%d)", n)

		expected := n < cfg.MaxAttempts
		assert.Equal(t, expected, IsRetryable(ErrorNetwork, n, cfg), "NETWORK n=%d", n)
		assert.Equal(t, expected, IsRetryable(ErrorRateLimit, n, cfg), "RATE_LIMIT n=%d", n)
		assert.Equal(t, expected, IsRetryable(ErrorServer, n, cfg), "SERVER n=%d", n)

		assert.Equal(t, n < 2, IsRetryable(ErrorUnknown, n, cfg), "UNKNOWN n=%d", n)
	}
}

func TestCalculateRetryDelay_Exponential(t *testing.T) {
	cfg := Config{
		MaxAttempts:       10,
		BaseDelay:         100 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 2,
	}
	now := time.Now()
	noJitter := func() float64 { return 0 }

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		2 * time.Second,
		2 * time.Second,
	}

	for i, want := range expected {
		got := calculateRetryDelay(ErrorServer, i+1, cfg, time.Time{}, now, noJitter)
		assert.Equal(t, want, got, "attempt %d", i+1)
	}
}

func TestCalculateRetryDelay_MonotonicAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JitterEnabled = false

	prev := time.Duration(0)
	for attempt := 1; attempt <= 50; attempt++ {
		d := CalculateRetryDelay(ErrorNetwork, attempt, cfg, time.Time{})
		assert.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
		assert.LessOrEqual(t, d, cfg.MaxDelay)
		prev = d
	}

	cfg.JitterEnabled = true
	limit := time.Duration(float64(cfg.MaxDelay) * (1 + JitterFactor))
	for attempt := 1; attempt <= 50; attempt++ {
		d := CalculateRetryDelay(ErrorNetwork, attempt, cfg, time.Time{})
		assert.LessOrEqual(t, d, limit, "attempt %d", attempt)
	}

	// Максимальный jitter
	maxJitter := calculateRetryDelay(ErrorNetwork, 100, cfg, time.Time{}, time.Now(), func() float64 { return 1 })
	assert.InDelta(t, float64(limit), float64(maxJitter), float64(time.Microsecond))
}

func TestCalculateRetryDelay_RateLimitReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JitterEnabled = false
	now := time.Now()
	noJitter := func() float64 { return 0 }

	got := calculateRetryDelay(ErrorRateLimit, 1, cfg, now.Add(10*time.Second), now, noJitter)
	assert.Equal(t, 10*time.Second, got)

	// Время сброса в прошлом - не меньше базовой задержки
	got = calculateRetryDelay(ErrorRateLimit, 1, cfg, now.Add(-time.Second), now, noJitter)
	assert.Equal(t, cfg.BaseDelay, got)

	// Подсказка о сбросе игнорируется для других типов ошибок
	got = calculateRetryDelay(ErrorServer, 1, cfg, now.Add(10*time.Second), now, noJitter)
	assert.Equal(t, cfg.BaseDelay, got)
}

func TestRateLimitReset(t *testing.T) {
	at := time.Now().Add(time.Minute)

	got, ok := RateLimitReset(fmt.Errorf("wrapped: %w", &httpError{status: 429, retryAt: at}))
	require.True(t, ok)
	assert.Equal(t, at, got)

	_, ok = RateLimitReset(&httpError{status: 429})
	assert.False(t, ok)

	_, ok = RateLimitReset(errors.New("plain"))
	assert.False(t, ok)
}
