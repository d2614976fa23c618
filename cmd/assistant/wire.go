package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/creastat/assistant/config"
	"github.com/creastat/assistant/gateway/rest"
	"github.com/creastat/assistant/prefs"
	"github.com/creastat/assistant/supabase"
)

func newGateway(cfg config.GatewayConfig) (*rest.Client, error) {
	return rest.New(rest.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
}

func newPrefsStore(cfg config.PrefsConfig) (prefs.Store, error) {
	storeType, err := prefs.ParseStoreType(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to select preference store: %w", err)
	}

	opts := []prefs.StoreOption{prefs.WithNamespace(cfg.Namespace)}
	switch storeType {
	case prefs.StoreTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts = append(opts, prefs.WithRedisClient(client), prefs.WithRedisTTL(cfg.Redis.TTL))

	case prefs.StoreTypeSupabase:
		client, err := supabase.New(supabase.Config{
			URL:      cfg.Supabase.URL,
			APIKey:   cfg.Supabase.APIKey,
			Table:    cfg.Supabase.Table,
			CacheTTL: cfg.Supabase.CacheTTL,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, prefs.WithSupabaseStore(client))
	}

	store, err := prefs.NewStore(storeType, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s preference store: %w", storeType, err)
	}
	return store, nil
}
