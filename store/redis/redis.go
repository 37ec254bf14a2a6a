package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallnest/clickflow/store"
)

// RedisStore implements store.Store using Redis
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*RedisStore)(nil)

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "clickflow:"
	TTL      time.Duration // Expiration for values, default 0 (no expiration)
}

// NewRedisStore creates a new Redis store
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return NewRedisStoreWithClient(client, opts.Prefix, opts.TTL)
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "clickflow:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + key
}

// Get returns the value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to load key %q from redis: %w", key, err)
	}
	return value, nil
}

// Set stores value under key
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save key %q to redis: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys under the prefix in lexical order
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	sort.Strings(keys)
	return keys, nil
}
