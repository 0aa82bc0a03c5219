package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chargesphere/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// InitCache connects the generic and auth Redis clients.
func InitCache() error {
	cacheClient, err := newRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	authClient, err := newRedisClient(config.AppConfig.RedisAuthDB)
	if err != nil {
		_ = cacheClient.Close()
		return fmt.Errorf("failed to connect to Redis (Auth Cache): %w", err)
	}
	CacheClient = cacheClient
	AuthCacheClient = authClient
	return nil
}

// CloseCache closes any open Redis clients.
func CloseCache() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}

// RedisCache stores opaque byte payloads under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns (nil, false, nil) on a miss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}
