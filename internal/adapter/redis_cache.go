// Package adapter holds infrastructure implementations of domain ports.
package adapter

import (
	"context"
	"errors"
	"time"

	"quiz-synth/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements domain.Cache on top of any redis command set.
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache wraps a connected client.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns domain.ErrCacheMiss when the key does not exist.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value under key. A zero expiration keeps the key forever.
func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes key; a missing key is not an error.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ domain.Cache = (*RedisCache)(nil)
