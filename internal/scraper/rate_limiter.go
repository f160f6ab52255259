package scraper

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces outbound requests at a fixed interval. Unused capacity
// accumulates while idle, up to a small burst allowance, so a retry pair or
// the first pages after startup go out without queueing.
type RateLimiter struct {
	mu            sync.Mutex
	nextAllowedAt time.Time
	interval      time.Duration
	burst         int
}

const defaultBurst = 3

func NewRateLimiter(requestsPerSecond int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &RateLimiter{
		interval: time.Second / time.Duration(requestsPerSecond),
		burst:    defaultBurst,
	}
}

// Wait blocks until the caller's slot comes up or ctx is cancelled. A
// cancelled wait still consumes its reservation, so later callers keep
// their original pacing.
func (r *RateLimiter) Wait(ctx context.Context) error {
	scheduled := r.reserve(time.Now())

	sleep := time.Until(scheduled)
	if sleep <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve hands out the next send time. The low-water mark caps idle
// credit: at most burst slots are ever immediately available.
func (r *RateLimiter) reserve(now time.Time) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	earliest := now.Add(-time.Duration(r.burst-1) * r.interval)
	if r.nextAllowedAt.Before(earliest) {
		r.nextAllowedAt = earliest
	}

	scheduled := r.nextAllowedAt
	r.nextAllowedAt = scheduled.Add(r.interval)
	return scheduled
}
