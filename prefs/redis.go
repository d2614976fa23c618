package prefs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis key prefix for preferences
const prefKeyPrefix = "prefs:"

// RedisStore implements Store using Redis strings with a sliding TTL.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisStore creates a new Redis-based preference store.
func NewRedisStore(client *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Get implements Store.
// Refreshes TTL on every read.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	k := s.key(key)
	val, err := s.client.Get(ctx, k).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "redis get %s", k)
	}

	// Refresh TTL on read; a failed refresh is not worth failing the read.
	_ = s.client.Expire(ctx, k, s.ttl).Err()

	return val, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	k := s.key(key)
	if err := s.client.Set(ctx, k, value, s.ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", k)
	}
	return nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	k := s.key(key)
	if err := s.client.Del(ctx, k).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", k)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key constructs the Redis key for a preference.
func (s *RedisStore) key(key string) string {
	return prefKeyPrefix + s.namespace + ":" + key
}

var _ Store = (*RedisStore)(nil)
