package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowAllow(t *testing.T) {
	rl := NewFixedWindowLimiter(2, time.Minute)
	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	ok, _ := rl.Allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok)

	clock = clock.Add(20 * time.Second)
	ok, retry := rl.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	ok, _ = rl.Allow("2.2.2.2")
	assert.True(t, ok, "other clients have their own window")

	clock = clock.Add(40 * time.Second)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok, "window reset")
}

func TestFixedWindowConcurrent(t *testing.T) {
	rl := NewFixedWindowLimiter(50, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("3.3.3.3"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
