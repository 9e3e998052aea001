package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/focuskeeper/internal/server/handlers"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// MsgRateLimited сообщение ответа 429
const MsgRateLimited = "rate limit exceeded, please try again later"

// RateLimiter counts requests per client in fixed windows.
// Idle windows are dropped by a background sweep until Stop is called.
type RateLimiter struct {
	windows map[string]*window
	logger  *slog.Logger
	stopC   chan struct{}
	now     func() time.Time
	limit   int
	length  time.Duration
	mu      sync.Mutex
	stop    sync.Once
}

// window - счетчик запросов клиента в текущем окне
type window struct {
	start time.Time
	count int
}

// NewRateLimiter allows limit requests per client in each window of the given length.
func NewRateLimiter(limit int, length time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		logger:  logger,
		stopC:   make(chan struct{}),
		now:     time.Now,
		limit:   limit,
		length:  length,
	}

	go rl.sweepLoop()

	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.length * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopC:
			return
		}
	}
}

// sweep удаляет окна, не использовавшиеся дольше двух периодов
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.length)
	for key, w := range rl.windows {
		if w.start.Before(cutoff) {
			delete(rl.windows, key)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() {
		close(rl.stopC)
	})
}

// Allow records a request for key and reports whether it fits the current window.
// The returned time is when that window ends.
func (rl *RateLimiter) Allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.length {
		w = &window{start: now}
		rl.windows[key] = w
	}

	resetAt := w.start.Add(rl.length)
	if w.count >= rl.limit {
		return false, resetAt
	}
	w.count++
	return true, resetAt
}

// retryAfter округляет ожидание вверх до целых секунд, минимум 1
func retryAfter(now, resetAt time.Time) int {
	wait := resetAt.Sub(now)
	secs := int((wait + time.Second - 1) / time.Second)
	return max(secs, 1)
}

// RateLimitMiddleware answers 429 with Retry-After and X-RateLimit-Reset once a client
// exhausts its window. Clients are counted by API key, or by IP when they send none.
func RateLimitMiddleware(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, resetAt := limiter.Allow(clientKey(r))
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn("Rate limit exceeded",
				"ip", getClientIP(r),
				"method", r.Method,
				"path", r.URL.Path,
				"reset_at", resetAt,
			)

			w.Header().Set(api.HeaderRetryAfter, strconv.Itoa(retryAfter(limiter.now(), resetAt)))
			w.Header().Set(api.HeaderRateLimitReset, strconv.FormatInt(resetAt.Unix(), 10))
			handlers.WriteError(w, MsgRateLimited, api.CodeThrottling, http.StatusTooManyRequests)
		})
	}
}

// clientKey выбирает ключ учета: API ключ или IP адрес
func clientKey(r *http.Request) string {
	if key := r.Header.Get(api.HeaderAPIKey); key != "" {
		return "key:" + key
	}
	return "ip:" + getClientIP(r)
}

// getClientIP prefers proxy headers: the first X-Forwarded-For hop, then X-Real-IP,
// then the connection address without its port.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
