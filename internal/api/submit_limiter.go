package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const submitLimiterIdleTTL = 10 * time.Minute

type submitVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// submitLimiter throttles outbound submissions per client address.
type submitLimiter struct {
	mu       sync.Mutex
	visitors map[string]*submitVisitor
	limit    rate.Limit
	burst    int
}

func newSubmitLimiter(limit rate.Limit, burst int) *submitLimiter {
	return &submitLimiter{
		visitors: make(map[string]*submitVisitor),
		limit:    limit,
		burst:    burst,
	}
}

func (limiter *submitLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.pruneLocked(now)
	visitor, ok := limiter.visitors[key]
	if !ok {
		visitor = &submitVisitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[key] = visitor
	}
	visitor.lastSeen = now
	return visitor.limiter.AllowN(now, 1)
}

func (limiter *submitLimiter) pruneLocked(now time.Time) {
	threshold := now.Add(-submitLimiterIdleTTL)
	for key, visitor := range limiter.visitors {
		if visitor.lastSeen.Before(threshold) {
			delete(limiter.visitors, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
