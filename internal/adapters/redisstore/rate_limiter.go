package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiterOptions groups settings for NewRateLimiter.
type RateLimiterOptions struct {
	MaxAttempts int
	Window      time.Duration
	Prefix      string
}

// RateLimiter counts attempts per key in Redis inside a rolling window.
// The window starts on the first attempt and the counter expires with it.
type RateLimiter struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
	prefix      string
}

// NewRateLimiter creates a Redis-backed rate limiter.
func NewRateLimiter(client redis.UniversalClient, opts RateLimiterOptions) *RateLimiter {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RateLimiter{
		client:      client,
		maxAttempts: opts.MaxAttempts,
		window:      opts.Window,
		prefix:      prefix,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("rate limit key cannot be empty")
	}

	redisKey := l.prefix + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if expErr := l.client.Expire(ctx, redisKey, l.window).Err(); expErr != nil {
			return false, fmt.Errorf("redis expire: %w", expErr)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

// Reset clears the attempt count for key.
func (l *RateLimiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return l.client.Del(ctx, l.prefix+key).Err()
}
