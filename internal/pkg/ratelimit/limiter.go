// Package ratelimit keeps one token bucket per client key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out a token bucket per key (usually the client IP).
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	r       rate.Limit
	b       int
	now     func() time.Time
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		entries: make(map[string]*entry),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

// Allow consumes one token from key's bucket.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Prune drops buckets idle for longer than idle and returns how many went.
func (l *KeyedLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	pruned := 0
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
