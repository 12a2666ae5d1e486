package http

import (
	"sync"
	"time"
)

const (
	// Mutations allowed per client per minute. A person logging meals stays
	// far below this; a runaway script does not.
	rateLimitPerMinute = 120

	visitorTTL    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

// rateLimiter caps mutating requests per client IP. Reads are never limited.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	seen  time.Time
	count int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		done:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// sweep periodically drops visitors idle longer than visitorTTL.
func (rl *rateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-visitorTTL)
			for ip, v := range rl.visitors {
				if v.seen.Before(cutoff) {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.seen) > time.Minute {
		rl.visitors[ip] = &visitor{seen: now, count: 1}
		return true
	}

	v.count++
	v.seen = now
	return v.count <= rateLimitPerMinute
}
