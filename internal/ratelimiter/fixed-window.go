package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// FixedWindowRateLimiter allows limit requests per client IP in each window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
	go rl.cleanup()
	return rl
}

// cleanup drops windows that have already ended so idle clients do not accumulate.
func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for range ticker.C {
		rl.Lock()
		now := rl.now()
		for ip, w := range rl.clients {
			if now.Sub(w.start) >= rl.window {
				delete(rl.clients, ip)
			}
		}
		rl.Unlock()
	}
}

// Allow counts a request from ip. When the limit is reached it returns false and the
// time left until the window resets.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[ip]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.clients[ip] = &window{count: 1, start: now}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, rl.window - now.Sub(w.start)
}
