package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chiMiddleware.GetReqID(r.Context()),
				"user", r.Header.Get("X-User-ID"),
			)
		})
	}
}

// rateLimiter is a per-caller sliding window. Callers are keyed by the
// X-User-ID header when present, so one browser session gets one budget no
// matter how its address changes; anonymous callers fall back to the remote
// address. Idle keys are pruned so the map stays bounded.
type rateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
	calls  uint64
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls%1024 == 0 {
		rl.pruneLocked()
	}

	cutoff := time.Now().Add(-rl.window)
	recent := rl.seen[key][:0]
	for _, t := range rl.seen[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= rl.limit {
		rl.seen[key] = recent
		return false
	}
	rl.seen[key] = append(recent, time.Now())
	return true
}

// pruneLocked drops idle keys so the map stays bounded. Callers hold rl.mu.
func (rl *rateLimiter) pruneLocked() {
	cutoff := time.Now().Add(-rl.window)
	for key, times := range rl.seen {
		idle := true
		for _, t := range times {
			if t.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(rl.seen, key)
		}
	}
}

func RateLimitMiddleware(requestsPerMinute int) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  requestsPerMinute,
		window: time.Minute,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-User-ID")
			if key == "" {
				key = r.RemoteAddr
			}
			if !rl.allow(key) {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
