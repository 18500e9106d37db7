package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

// DefaultTTL drops states of users who never answered
const DefaultTTL = 24 * time.Hour

// RedisManager manages user states using Redis
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager wraps a connected client. The caller owns the client.
func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisManager{client: client, ttl: ttl}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(ctx context.Context, userID int64, state string) {
	if state == None {
		m.ClearUserState(ctx, userID)
		return
	}
	if err := m.client.Set(ctx, stateKey(userID), state, m.ttl).Err(); err != nil {
		logger.WithContext(ctx).Warn("Failed to save user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user. Lookup failures read as None.
func (m *RedisManager) GetUserState(ctx context.Context, userID int64) string {
	result, err := m.client.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return None
	}
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to load user state", "user_id", userID, "error", err)
		return None
	}
	return result
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(ctx context.Context, userID int64) {
	if err := m.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		logger.WithContext(ctx).Warn("Failed to clear user state", "user_id", userID, "error", err)
	}
}
