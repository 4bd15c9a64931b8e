// Package ratelimiter implements per-key token buckets that forget idle keys.
package ratelimiter

import (
	"math"
	"sync"
	"time"
)

// bucket is a single token bucket.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	timer      *time.Timer
	key        string
	parent     *KeyedLimiter
}

// KeyedLimiter hands out one bucket per key (usually an author name).
// A bucket untouched for idleTTL is dropped.
type KeyedLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	idleTTL  time.Duration
	now      func() time.Time
}

// New builds a limiter refilling rate tokens per second up to capacity.
func New(rate, capacity float64, idleTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// PerMinute allows n requests per minute per key, bursting to n (at least one).
func PerMinute(n float64) *KeyedLimiter {
	return New(n/60, math.Max(1, n), time.Hour)
}

// PerSecond allows n requests per second per key, bursting to n (at least one).
func PerSecond(n float64) *KeyedLimiter {
	return New(n, math.Max(1, n), time.Hour)
}

// Allow takes a token from key's bucket.
func (l *KeyedLimiter) Allow(key string) bool {
	return l.bucket(key).take(l.now())
}

// Len reports the number of live buckets.
func (l *KeyedLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Stop cancels all expiry timers.
func (l *KeyedLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		b.mu.Lock()
		if b.timer != nil {
			b.timer.Stop()
		}
		b.mu.Unlock()
	}
}

func (l *KeyedLimiter) bucket(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		b.touch()
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check after acquiring write lock
	if b, ok = l.buckets[key]; ok {
		b.touch()
		return b
	}
	b = &bucket{
		tokens:     l.capacity,
		lastRefill: l.now(),
		key:        key,
		parent:     l,
	}
	l.buckets[key] = b
	b.touch()
	return b
}

func (l *KeyedLimiter) forget(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// touch pushes the bucket's expiry idleTTL into the future.
func (b *bucket) touch() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.idleTTL, func() {
		b.parent.forget(b.key)
	})
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.parent.rate
		if b.tokens > b.parent.capacity {
			b.tokens = b.parent.capacity
		}
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}
