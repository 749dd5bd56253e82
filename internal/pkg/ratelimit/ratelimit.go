package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a minimum interval between repeated actions per user.
// It is in-process and best-effort: restarts forget all state, so callers
// must not rely on it for correctness.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[int64]time.Time
	now      func() time.Time
}

// New creates a limiter with the given minimum interval. A non-positive
// interval allows everything.
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		last:     make(map[int64]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether the user may act now and, if so, records the attempt.
func (l *Limiter) Allow(userID int64) bool {
	if l.interval <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[userID]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.last[userID] = now
	return true
}
