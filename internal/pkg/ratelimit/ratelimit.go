package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter backed by Redis. A nil client
// disables limiting entirely.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter creates a Limiter allowing limit requests per window
func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

// Enabled reports whether limiting is active
func (l *Limiter) Enabled() bool {
	return l != nil && l.rdb != nil && l.limit > 0
}

// Allow counts one request for key and reports whether it stays within the
// window's budget. The first request of a window sets the expiry.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}

	redisKey := fmt.Sprintf("rate_limit:%s", key)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count request in redis: %w", err)
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

// RetryAfter returns how long the caller has to wait for a fresh window
func (l *Limiter) RetryAfter(ctx context.Context, key string) (time.Duration, error) {
	if !l.Enabled() {
		return 0, nil
	}
	return l.rdb.TTL(ctx, fmt.Sprintf("rate_limit:%s", key)).Result()
}
