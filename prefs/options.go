package prefs

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creastat/assistant/supabase"
)

// StoreOption is a functional option for configuring a preference store.
type StoreOption func(*storeConfig)

// storeConfig holds configuration for preference stores.
type storeConfig struct {
	namespace     string
	redisClient   *redis.Client
	redisTTL      time.Duration
	supabaseStore supabase.Store
}

// WithNamespace scopes every key to one visitor or device.
func WithNamespace(namespace string) StoreOption {
	return func(c *storeConfig) {
		c.namespace = namespace
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for Redis keys.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// WithSupabaseStore sets the preferences table client for the Supabase store.
func WithSupabaseStore(store supabase.Store) StoreOption {
	return func(c *storeConfig) {
		c.supabaseStore = store
	}
}
