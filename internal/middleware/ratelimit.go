package middleware

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/axlerator/axlerator-backend/internal/utils"
)

// Rate limit defaults, overridable via environment.
const (
	DefaultRateLimitMax      = 100
	DefaultRateLimitWindowMs = 60000
	sweepInterval            = 60 * time.Second
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a process-wide fixed-window request counter keyed by client
// identifier. A client can burst up to twice the limit across a window
// boundary; acceptable for a single-process deployment, a multi-instance one
// would need a shared store.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowEntry
	max     int
	window  time.Duration
	stop    chan struct{}
}

// NewRateLimiter creates a limiter with an explicit limit and window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		stop:    make(chan struct{}),
	}
}

// NewRateLimiterFromEnv creates a limiter configured from environment
// variables, with 100 requests per 60s as the fallback.
func NewRateLimiterFromEnv() *RateLimiter {
	max := utils.GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", DefaultRateLimitMax)
	windowMs := utils.GetEnvAsInt("RATE_LIMIT_WINDOW_MS", DefaultRateLimitWindowMs)
	return NewRateLimiter(max, time.Duration(windowMs)*time.Millisecond)
}

// Check counts one request for the identifier. The check and the increment
// run under one lock so concurrent requests cannot slip past the cap.
func (rl *RateLimiter) Check(identifier string) (allowed bool, remaining int, resetAt time.Time) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.clients[identifier]
	if !exists || now.After(entry.resetAt) {
		entry = &windowEntry{count: 1, resetAt: now.Add(rl.window)}
		rl.clients[identifier] = entry
		return true, rl.max - 1, entry.resetAt
	}

	if entry.count >= rl.max {
		return false, 0, entry.resetAt
	}

	entry.count++
	return true, rl.max - entry.count, entry.resetAt
}

// Limit returns the configured per-window request cap.
func (rl *RateLimiter) Limit() int {
	return rl.max
}

// StartSweep begins a background loop that drops expired entries to bound
// memory growth.
func (rl *RateLimiter) StartSweep() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stop:
				return
			}
		}
	}()
}

// Stop halts the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweep() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for identifier, entry := range rl.clients {
		if now.After(entry.resetAt) {
			delete(rl.clients, identifier)
		}
	}
}

// ClientIdentifier extracts the originating IP, preferring proxy headers.
func ClientIdentifier(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// Handler returns a Fiber middleware enforcing the limit ahead of every
// route it wraps.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, remaining, resetAt := rl.Check(ClientIdentifier(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too many requests",
				"message": "Rate limit exceeded. Please try again later.",
			})
		}

		return c.Next()
	}
}
