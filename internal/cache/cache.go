// Package cache stores rendered reports keyed by a hash of their input.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss means no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// KeyPrefix namespaces report entries in a shared Redis.
const KeyPrefix = "somnus:report:"

// ReportCache stores rendered documents.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Key derives a cache key from a canonical encoding of the render input.
func Key(input []byte) string {
	sum := sha256.Sum256(input)
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// RedisReportCache keeps reports in Redis with a fixed TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

// NewRedisClient creates a client for the given server.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping checks that the server is reachable.
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the underlying client.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, string, []byte) error    { return nil }
