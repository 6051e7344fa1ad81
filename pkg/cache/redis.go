package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// RedisClient is the shared connection pool behind the local record slot,
// the remote read cache and the session store.
type RedisClient struct {
	client *redis.Client
}

// tune applies pool limits sized for a single web process.
func tune(opts *redis.Options) {
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second
}

// NewRedisClient connects to rawURL and pings it before returning.
func NewRedisClient(ctx context.Context, rawURL string) (*RedisClient, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	tune(opts)

	rc := &RedisClient{client: redis.NewClient(opts)}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.client.Close()
		return nil, err
	}
	return rc, nil
}

// Ping satisfies httpx.HealthChecker.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. Safe on a zero value.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool to components that issue commands directly.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
