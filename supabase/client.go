package supabase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/supabase-community/supabase-go"
)

// DefaultTable is the preferences table name.
const DefaultTable = "widget_preferences"

// Config holds Supabase connection configuration
type Config struct {
	URL      string
	APIKey   string
	Table    string        // Default: widget_preferences
	CacheTTL time.Duration // Default: 5 minutes
}

// Client implements the Store interface using Supabase
type Client struct {
	client   *supabase.Client
	table    string
	cache    *cache
	cacheTTL time.Duration
}

// cache provides thread-safe caching for frequently read preferences
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry[*Preference]
}

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// New creates a new Supabase client
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		client:   client,
		table:    cfg.Table,
		cacheTTL: cfg.CacheTTL,
		cache: &cache{
			entries: make(map[string]*cacheEntry[*Preference]),
		},
	}, nil
}

// GetPreference retrieves a visitor preference
func (c *Client) GetPreference(ctx context.Context, visitorID, key string) (*Preference, error) {
	// Check cache first
	if cached, ok := c.getFromCache(visitorID, key); ok {
		return cached, nil
	}

	var prefs []Preference
	_, err := c.client.From(c.table).
		Select("*", "", false).
		Eq("visitor_id", visitorID).
		Eq("key", key).
		ExecuteTo(&prefs)

	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	if len(prefs) == 0 {
		c.addToCache(visitorID, key, nil)
		return nil, nil
	}

	pref := &prefs[0]
	c.addToCache(visitorID, key, pref)

	return pref, nil
}

// UpsertPreference creates or replaces a visitor preference
func (c *Client) UpsertPreference(ctx context.Context, pref Preference) error {
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now().UTC()
	}

	_, _, err := c.client.From(c.table).
		Upsert(pref, "visitor_id,key", "minimal", "").
		Execute()

	if err != nil {
		c.invalidate(pref.VisitorID, pref.Key)
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	c.addToCache(pref.VisitorID, pref.Key, &pref)

	return nil
}

// DeletePreference removes a visitor preference
func (c *Client) DeletePreference(ctx context.Context, visitorID, key string) error {
	_, _, err := c.client.From(c.table).
		Delete("minimal", "").
		Eq("visitor_id", visitorID).
		Eq("key", key).
		Execute()

	c.invalidate(visitorID, key)

	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	return nil
}

// Close closes the Supabase client
func (c *Client) Close() error {
	// Supabase client doesn't require explicit close
	return nil
}

// getFromCache retrieves a preference from cache; a cached nil means "not set"
func (c *Client) getFromCache(visitorID, key string) (*Preference, bool) {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()

	if e, ok := c.cache.entries[cacheKey(visitorID, key)]; ok {
		if time.Now().Before(e.expiresAt) {
			return e.value, true
		}
	}
	return nil, false
}

// addToCache adds a preference to cache
func (c *Client) addToCache(visitorID, key string, value *Preference) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	c.cache.entries[cacheKey(visitorID, key)] = &cacheEntry[*Preference]{
		value:     value,
		expiresAt: time.Now().Add(c.cacheTTL),
	}
}

func (c *Client) invalidate(visitorID, key string) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	delete(c.cache.entries, cacheKey(visitorID, key))
}

func cacheKey(visitorID, key string) string {
	return visitorID + "\x00" + key
}

// Compile-time check that Client implements Store
var _ Store = (*Client)(nil)
