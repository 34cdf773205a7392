package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const indexKeyPrefix = "jobs:index:"

// RedisStore is the production Store backed by Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses redisURL and verifies connectivity
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a Store over an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: DefaultTTL}
}

// GetJobList implements Store
func (s *RedisStore) GetJobList(ctx context.Context, key string) (*JobList, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	var list JobList
	if err := json.Unmarshal(raw, &list); err != nil {
		// A corrupt entry is treated as a miss; the next write replaces it
		return nil, false, nil
	}
	return &list, true, nil
}

// SetJobList implements Store
func (s *RedisStore) SetJobList(ctx context.Context, key, platform string, list *JobList) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, raw, s.ttl)
	pipe.SAdd(ctx, indexKeyPrefix+platform, key)
	pipe.Expire(ctx, indexKeyPrefix+platform, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// InvalidatePlatforms implements Store. Listings that span all platforms are
// dropped whenever any platform is invalidated.
func (s *RedisStore) InvalidatePlatforms(ctx context.Context, platforms []string) error {
	if len(platforms) == 0 {
		return nil
	}

	buckets := make([]string, 0, len(platforms)+1)
	for _, p := range platforms {
		buckets = append(buckets, indexKeyPrefix+p)
	}
	buckets = append(buckets, indexKeyPrefix+IndexAll)

	for _, bucket := range buckets {
		keys, err := s.client.SMembers(ctx, bucket).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read cache index %s: %w", bucket, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to drop cache entries for %s: %w", bucket, err)
			}
		}
		if err := s.client.Del(ctx, bucket).Err(); err != nil {
			return fmt.Errorf("failed to drop cache index %s: %w", bucket, err)
		}
	}
	return nil
}
