// Package ratelimit caps request frequency per client address for sensitive
// routes. State lives behind the Store interface so the in-memory backend can
// be swapped for a shared one without touching call sites.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Store tracks request counts per key. Increment applies the
// reset-on-expired-window step: on the first request for a key, or once the
// key's window has elapsed, the count restarts at 1 and a new window begins;
// otherwise the count grows within the current window. It returns the count
// after the increment.
type Store interface {
	Increment(key string, window time.Duration, now time.Time) int
}

type record struct {
	count   int
	resetAt time.Time
}

// MemoryStore is process-local: counters do not survive restart, and each
// instance of the service enforces its own independent limit. Entries are
// never evicted.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*record)}
}

func (s *MemoryStore) Increment(key string, window time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[key]
	if !ok || now.After(r.resetAt) {
		s.records[key] = &record{count: 1, resetAt: now.Add(window)}
		return 1
	}
	r.count++
	return r.count
}

type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow reports whether a request for key fits within the current window.
func (l *Limiter) Allow(key string) bool {
	return l.store.Increment(key, l.window, time.Now()) <= l.limit
}

// Middleware enforces the limit per client address, answering 429 in plain
// text when the quota is exceeded.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests")
		}
		return c.Next()
	}
}
