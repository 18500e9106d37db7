package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

const redisKeyPrefix = "advice:"

// Redis keeps entries in Redis and lets the server expire them
type Redis struct {
	client *redis.Client
	expiry time.Duration
}

// NewRedis wraps an existing client
func NewRedis(client *redis.Client, expiry time.Duration) *Redis {
	return &Redis{client: client, expiry: expiry}
}

func (r *Redis) Get(ctx context.Context, key Key) (string, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key.String()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		logger.Warn("Advice cache read failed", "error", err)
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key Key, value string) {
	if err := r.client.Set(ctx, redisKeyPrefix+key.String(), value, r.expiry).Err(); err != nil {
		logger.Warn("Advice cache write failed", "error", err)
	}
}

// Prune is a no-op: Redis expires keys itself
func (r *Redis) Prune(_ context.Context) int {
	return 0
}

func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Advice cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Advice cache clear failed", "error", err)
	}
}

// Client returns the underlying connection so other stores can share it
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
