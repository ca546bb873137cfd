package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const quotaWindow = 24 * time.Hour

// ErrDailyLimitReached is returned when the daily API call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// Usage is a point-in-time view of the daily Browse API quota.
type Usage struct {
	Used    int64
	Limit   int64
	ResetAt time.Time
}

// Remaining returns the calls left in the current window, never negative.
func (u Usage) Remaining() int64 {
	return max(u.Limit-u.Used, 0)
}

// RateLimiter guards Browse API calls with a per-second token bucket and a
// daily quota. The daily window is anchored: once it expires it advances in
// whole days from the previous reset, so a reset time learned from eBay
// stays aligned across days.
type RateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time

	mu      sync.Mutex
	used    int64
	limit   int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = f
	}
}

// NewRateLimiter creates a rate limiter allowing perSecond calls with the
// given burst, and at most dailyLimit calls per window.
func NewRateLimiter(
	perSecond float64,
	burst int,
	dailyLimit int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		limit:  dailyLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.now().Add(quotaWindow)
	return r
}

// Wait claims one call from the daily quota, then blocks for a per-second
// token. The claim is handed back if the context ends first, so canceled
// searches do not burn quota.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.claim(); err != nil {
		return err
	}
	if err := r.bucket.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

func (r *RateLimiter) claim() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if r.used >= r.limit {
		return fmt.Errorf("%w (%d/%d, resets %s)",
			ErrDailyLimitReached, r.used, r.limit, r.resetAt.Format(time.RFC3339))
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used > 0 {
		r.used--
	}
}

// rollLocked starts a fresh window once the current one has expired.
func (r *RateLimiter) rollLocked() {
	now := r.now()
	if now.Before(r.resetAt) {
		return
	}
	r.used = 0
	for !now.Before(r.resetAt) {
		r.resetAt = r.resetAt.Add(quotaWindow)
	}
}

// Usage returns the current quota usage.
func (r *RateLimiter) Usage() Usage {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	return Usage{Used: r.used, Limit: r.limit, ResetAt: r.resetAt}
}

// Sync adopts the quota eBay reports, so a restart does not forget calls
// already spent today. A nil state is ignored.
func (r *RateLimiter) Sync(q *QuotaState) {
	if q == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if q.Limit > 0 {
		r.limit = q.Limit
	}
	r.used = q.Count
	if !q.ResetAt.IsZero() {
		r.resetAt = q.ResetAt
	}
}
