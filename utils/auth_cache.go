package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// AuthEntry is the cached view of a user's current session.
type AuthEntry struct {
	TokenHash string `json:"tokenHash"`
	Role      string `json:"role"`
}

// AuthCache caches session hashes so authentication can skip the database.
type AuthCache interface {
	Get(ctx context.Context, userID string) (*AuthEntry, error)
	Set(ctx context.Context, userID string, entry AuthEntry) error
	Delete(ctx context.Context, userID string) error
}

// RedisAuthCache implements AuthCache on the auth Redis DB.
type RedisAuthCache struct {
	client *redis.Client
}

func NewRedisAuthCache(client *redis.Client) *RedisAuthCache {
	return &RedisAuthCache{client: client}
}

// Get returns (nil, nil) on a cache miss.
func (r *RedisAuthCache) Get(ctx context.Context, userID string) (*AuthEntry, error) {
	data, err := r.client.Get(ctx, AuthCachePrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read auth cache: %w", err)
	}
	var entry AuthEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth entry: %w", err)
	}
	return &entry, nil
}

func (r *RedisAuthCache) Set(ctx context.Context, userID string, entry AuthEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal auth entry: %w", err)
	}
	if err := r.client.Set(ctx, AuthCachePrefix+userID, data, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth entry: %w", err)
	}
	return nil
}

func (r *RedisAuthCache) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, AuthCachePrefix+userID).Err()
}
