// Package cache stores resolved location codes so repeated runs skip the
// lookup call for places they have already seen.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LocationCache maps a free-text place name to its location code.
type LocationCache interface {
	Get(ctx context.Context, name string) (string, bool)
	Set(ctx context.Context, name, code string) error
	Close() error
}

// RedisConfig holds the connection settings of the Redis cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultRedisConfig returns a local Redis with a one-week TTL.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		DB:   0,
		TTL:  7 * 24 * time.Hour,
	}
}

// RedisCache is a LocationCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and pings it once. An empty address or a
// non-positive TTL is taken from DefaultRedisConfig.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	def := DefaultRedisConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached code for name. Any Redis failure counts as a miss.
func (c *RedisCache) Get(ctx context.Context, name string) (string, bool) {
	code, err := c.client.Get(ctx, Key(name)).Result()
	if err != nil || code == "" {
		return "", false
	}
	return code, true
}

// Set stores code for name with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, name, code string) error {
	if code == "" {
		return errors.New("cache: empty location code")
	}
	return c.client.Set(ctx, Key(name), code, c.ttl).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache never stores anything.
type NoOpCache struct{}

// NewNoOpCache returns a cache that always misses.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, name string) (string, bool) {
	return "", false
}

func (c *NoOpCache) Set(ctx context.Context, name, code string) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key returns the Redis key for a place name. Names differing only in case
// or surrounding space share a key.
func Key(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	hash := sha256.Sum256([]byte(normalized))
	return "location:" + hex.EncodeToString(hash[:])
}
