package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RateLimiter spaces requests to the source site.
type RateLimiter interface {
	Wait(ctx context.Context) error
	SetDelay(min, max time.Duration)
}

// SimpleRateLimiter waits a jittered delay between min and max since
// the previous action. Safe for concurrent use.
type SimpleRateLimiter struct {
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	mu         sync.Mutex
	jitter     bool
}

func NewSimpleRateLimiter(minDelay, maxDelay time.Duration) *SimpleRateLimiter {
	return &SimpleRateLimiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		jitter:   true,
	}
}

// NewFixedRateLimiter waits exactly delay between requests, matching a
// politeness --delay flag.
func NewFixedRateLimiter(delay time.Duration) *SimpleRateLimiter {
	return &SimpleRateLimiter{
		minDelay: delay,
		maxDelay: delay,
	}
}

func (r *SimpleRateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastAction)
	delay := r.calculateDelay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	r.lastAction = time.Now()
	return nil
}

func (r *SimpleRateLimiter) SetDelay(min, max time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minDelay = min
	r.maxDelay = max
}

func (r *SimpleRateLimiter) calculateDelay() time.Duration {
	if !r.jitter || r.maxDelay <= r.minDelay {
		return r.minDelay
	}
	spread := r.maxDelay - r.minDelay
	return r.minDelay + time.Duration(rand.Int63n(int64(spread)))
}
