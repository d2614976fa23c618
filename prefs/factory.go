package prefs

import (
	"strings"
	"time"

	"github.com/creastat/assistant"
)

// StoreType represents the type of preference store.
type StoreType string

const (
	StoreTypeMemory   StoreType = "memory"
	StoreTypeRedis    StoreType = "redis"
	StoreTypeSupabase StoreType = "supabase"

	// DefaultNamespace is used when no visitor namespace is configured.
	DefaultNamespace = "default"
)

// ParseStoreType validates a driver name.
func ParseStoreType(name string) (StoreType, error) {
	switch t := StoreType(strings.ToLower(strings.TrimSpace(name))); t {
	case StoreTypeMemory, StoreTypeRedis, StoreTypeSupabase:
		return t, nil
	case "":
		return StoreTypeMemory, nil
	default:
		return "", assistant.ErrInvalidStoreType
	}
}

// NewStore creates a new preference Store based on the given type.
// Supports "memory", "redis" and "supabase" driver types.
// For Redis, requires WithRedisClient option.
// For Supabase, requires WithSupabaseStore option.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}

	for _, opt := range opts {
		opt(config)
	}

	namespace := strings.TrimSpace(config.namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(), nil

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, assistant.ErrInvalidConfig
		}
		return NewRedisStore(config.redisClient, namespace, config.redisTTL), nil

	case StoreTypeSupabase:
		if config.supabaseStore == nil {
			return nil, assistant.ErrInvalidConfig
		}
		return NewSupabaseStore(config.supabaseStore, namespace), nil

	default:
		return nil, assistant.ErrInvalidStoreType
	}
}

// defaultTTL keeps a remembered language for a season of visits.
const defaultTTL = 180 * 24 * time.Hour
