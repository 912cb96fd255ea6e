package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func limitedHandler(limit int) http.Handler {
	mw := RateLimitMiddleware(limit)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(handler http.Handler, userID, remoteAddr string) int {
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitKeyedByUser(t *testing.T) {
	handler := limitedHandler(2)

	// Two users on the same address get separate budgets.
	for i := 0; i < 2; i++ {
		if code := hit(handler, "alice", "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("alice request %d: got %d", i+1, code)
		}
		if code := hit(handler, "bob", "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("bob request %d: got %d", i+1, code)
		}
	}
	if code := hit(handler, "alice", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("alice over budget: expected 429, got %d", code)
	}
	if code := hit(handler, "bob", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("bob over budget: expected 429, got %d", code)
	}
}

func TestRateLimitUserBudgetFollowsAddressChange(t *testing.T) {
	handler := limitedHandler(2)

	// The same user keeps one budget across address changes.
	hit(handler, "alice", "10.0.0.1:1234")
	hit(handler, "alice", "10.0.0.2:5678")
	if code := hit(handler, "alice", "10.0.0.3:9999"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on the third request regardless of address, got %d", code)
	}
}

func TestRateLimitAnonymousFallsBackToAddress(t *testing.T) {
	handler := limitedHandler(1)

	if code := hit(handler, "", "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first anonymous request: got %d", code)
	}
	if code := hit(handler, "", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("same address over budget: expected 429, got %d", code)
	}
	if code := hit(handler, "", "10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("different address gets its own budget, got %d", code)
	}
}

func TestRateLimiterPrunesIdleKeys(t *testing.T) {
	rl := &rateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  5,
		window: time.Minute,
	}
	stale := time.Now().Add(-2 * time.Minute)
	rl.seen["gone"] = []time.Time{stale}
	rl.seen["active"] = []time.Time{time.Now()}

	rl.mu.Lock()
	rl.pruneLocked()
	rl.mu.Unlock()

	if _, ok := rl.seen["gone"]; ok {
		t.Error("idle key should be pruned")
	}
	if _, ok := rl.seen["active"]; !ok {
		t.Error("active key must survive pruning")
	}
}
