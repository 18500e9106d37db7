// Package cache memoizes generated advice with wall-clock expiry.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/pressure-helper/internal/config"
	"github.com/vladimiradmaev/pressure-helper/internal/domain"
)

// DefaultExpiry matches CACHE_EXPIRY's default
const DefaultExpiry = time.Hour

// Key identifies one advice request. Latest is the newest reading time in the
// queried set, so new data in the same window produces a different key.
type Key struct {
	UserID     int64
	Start      string
	End        string
	Pattern    string
	HasPattern bool
	Latest     int64
}

// NewKey builds a key from the query that produced readings
func NewKey(userID int64, rng domain.DateRange, pattern string, hasPattern bool, latest time.Time) Key {
	k := Key{
		UserID:     userID,
		Pattern:    pattern,
		HasPattern: hasPattern,
		Latest:     latest.Unix(),
	}
	if rng.Start != nil {
		k.Start = rng.Start.Format("2006-01-02")
	}
	if rng.End != nil {
		k.End = rng.End.Format("2006-01-02")
	}
	return k
}

// String encodes the key for external stores
func (k Key) String() string {
	pattern := "-"
	if k.HasPattern {
		pattern = strconv.Quote(k.Pattern)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%d", k.UserID, orDash(k.Start), orDash(k.End), pattern, k.Latest)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Cache stores advice text per key
type Cache interface {
	// Get returns the value when present and younger than the expiry
	Get(ctx context.Context, key Key) (string, bool)
	// Set stores value, replacing any existing entry
	Set(ctx context.Context, key Key, value string)
	// Prune removes expired entries and reports how many were dropped
	Prune(ctx context.Context) int
	// Clear drops every entry
	Clear(ctx context.Context)
}

// New builds the backend selected by cfg
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	expiry := cfg.Expiry()
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	switch cfg.Backend {
	case "", "memory":
		return NewMemory(expiry), nil
	case "redis":
		client, err := newRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewRedis(client, expiry), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// newRedisClient connects to the redis server named by cfg and pings it
func newRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
