package api

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestSubmitLimiterAllowsBurstThenThrottles(t *testing.T) {
	t.Parallel()

	limiter := newSubmitLimiter(rate.Every(time.Minute), 2)
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	if !limiter.allow("10.0.0.1", now) || !limiter.allow("10.0.0.1", now) {
		t.Fatal("expected burst of two to pass")
	}
	if limiter.allow("10.0.0.1", now) {
		t.Fatal("expected third submit within burst window to be throttled")
	}
	if !limiter.allow("10.0.0.2", now) {
		t.Fatal("expected other clients to be unaffected")
	}
	if !limiter.allow("10.0.0.1", now.Add(time.Minute)) {
		t.Fatal("expected a token to refill after one minute")
	}
}

func TestSubmitLimiterForgetsIdleVisitors(t *testing.T) {
	t.Parallel()

	limiter := newSubmitLimiter(rate.Every(time.Hour), 1)
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	limiter.allow("10.0.0.1", now)

	limiter.allow("10.0.0.2", now.Add(submitLimiterIdleTTL+time.Second))
	limiter.mu.Lock()
	_, stillTracked := limiter.visitors["10.0.0.1"]
	limiter.mu.Unlock()
	if stillTracked {
		t.Fatal("expected idle visitor to be pruned")
	}
}

func TestSubmissionGateIsSingleFlightPerSession(t *testing.T) {
	t.Parallel()

	gate := newSubmissionGate()
	if !gate.acquire("session-a") {
		t.Fatal("expected first acquire to pass")
	}
	if gate.acquire("session-a") {
		t.Fatal("expected second acquire for the same session to fail")
	}
	if !gate.acquire("session-b") {
		t.Fatal("expected other sessions to be independent")
	}
	gate.release("session-a")
	if !gate.acquire("session-a") {
		t.Fatal("expected acquire after release to pass")
	}
}
