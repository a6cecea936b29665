package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter throttles failed login attempts per username+IP, backed by
// Redis. Key format: loginfail:<username>:<ip>; the counter expires after the
// configured window so a quiet account unlocks itself.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive maxAttempts or window fall back to defaults.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// TooManyAttempts reports whether the caller has exhausted the attempt budget.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, username, remoteIP string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username, remoteIP)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("limiter get: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username, remoteIP string) error {
	key := l.key(username, remoteIP)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("limiter record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username, remoteIP string) error {
	return l.client.Del(ctx, l.key(username, remoteIP)).Err()
}

func (l *LoginLimiter) key(username, remoteIP string) string {
	return fmt.Sprintf("loginfail:%s:%s", username, remoteIP)
}
