package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a per-client-IP token bucket limiter. Buckets idle for
// longer than idleTTL are swept in the background; call Stop on shutdown.
type RateLimiter struct {
	buckets sync.Map // client IP -> *bucket
	idleTTL time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter starts a limiter that sweeps idle buckets every
// cleanupInterval. A bucket is idle after two cleanup intervals without use.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := newRateLimiter(cleanupInterval, time.Now)
	go rl.sweepLoop(cleanupInterval)
	return rl
}

func newRateLimiter(cleanupInterval time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		idleTTL: 2 * cleanupInterval,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Stop terminates the background sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns middleware allowing maxPerMinute requests per client IP,
// refilled continuously. Rejected requests get 429 with Retry-After.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	retryAfter := strconv.Itoa(int(60.0/float64(maxPerMinute)) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.bucketFor(clientIP(r), maxPerMinute).allow(rl.now()) {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucketFor(key string, maxPerMinute int) *bucket {
	if b, ok := rl.buckets.Load(key); ok {
		return b.(*bucket)
	}
	maxTokens := float64(maxPerMinute)
	b, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: maxTokens / 60.0,
		lastRefill: rl.now(),
	})
	return b.(*bucket)
}

func (b *bucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens = min(b.maxTokens, b.tokens+elapsed*b.refillRate)
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops idle buckets and returns how many were removed.
func (rl *RateLimiter) sweep() int {
	now := rl.now()
	removed := 0
	rl.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)
		b.mu.Lock()
		idle := now.Sub(b.lastRefill)
		b.mu.Unlock()
		if idle > rl.idleTTL {
			rl.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// clientIP strips the port from RemoteAddr so that one client opening many
// connections shares a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
