package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway/rest"
	"github.com/creastat/assistant/prefs"
	"github.com/creastat/assistant/supabase"
)

// EnvPrefix prefixes every environment override, e.g. ASSISTANT_GATEWAY_BASE_URL.
const EnvPrefix = "ASSISTANT"

// Config holds all configuration for the assistant host.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Prefs   PrefsConfig   `mapstructure:"prefs"`
	History HistoryConfig `mapstructure:"history"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Normalize applies defaults for unset log values.
func (c LogConfig) Normalize() LogConfig {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	if c.Level == "" {
		c.Level = "info"
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = "console"
	}
	return c
}

// Validate ensures the log format is known.
func (c LogConfig) Validate() error {
	if c.Format != "console" && c.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Format)
	}
	return nil
}

// GatewayConfig points at the assistant backend.
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Normalize applies defaults for unset gateway values.
func (c GatewayConfig) Normalize() GatewayConfig {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = rest.DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = rest.DefaultTimeout
	}
	return c
}

// Validate ensures the backend origin is an absolute http(s) URL.
func (c GatewayConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("gateway.base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	return nil
}

// PrefsConfig selects where the chosen language is remembered.
type PrefsConfig struct {
	Driver    string         `mapstructure:"driver"` // memory, redis or supabase
	Namespace string         `mapstructure:"namespace"`
	Key       string         `mapstructure:"key"`
	Redis     RedisConfig    `mapstructure:"redis"`
	Supabase  SupabaseConfig `mapstructure:"supabase"`
}

// RedisConfig configures the redis preference driver.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SupabaseConfig configures the supabase preference driver.
type SupabaseConfig struct {
	URL      string        `mapstructure:"url"`
	APIKey   string        `mapstructure:"api_key"`
	Table    string        `mapstructure:"table"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Normalize applies defaults for unset preference values.
func (c PrefsConfig) Normalize() PrefsConfig {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	if c.Driver == "" {
		c.Driver = string(prefs.StoreTypeMemory)
	}
	c.Namespace = strings.TrimSpace(c.Namespace)
	if c.Namespace == "" {
		c.Namespace = prefs.DefaultNamespace
	}
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		c.Key = prefs.LanguageKey
	}
	if strings.TrimSpace(c.Supabase.Table) == "" {
		c.Supabase.Table = supabase.DefaultTable
	}
	return c
}

// Validate ensures the selected driver has what it needs.
func (c PrefsConfig) Validate() error {
	storeType, err := prefs.ParseStoreType(c.Driver)
	if err != nil {
		return fmt.Errorf("prefs.driver %q: %w", c.Driver, err)
	}
	switch storeType {
	case prefs.StoreTypeRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("prefs.redis.addr is required for the redis driver")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("prefs.redis.db cannot be negative")
		}
	case prefs.StoreTypeSupabase:
		if strings.TrimSpace(c.Supabase.URL) == "" || strings.TrimSpace(c.Supabase.APIKey) == "" {
			return fmt.Errorf("prefs.supabase.url and prefs.supabase.api_key are required for the supabase driver")
		}
	}
	return nil
}

// HistoryConfig bounds the retained conversation. Zero disables a limit.
type HistoryConfig struct {
	MaxMessages int `mapstructure:"max_messages"`
	MaxTokens   int `mapstructure:"max_tokens"`
}

// Validate rejects negative limits.
func (c HistoryConfig) Validate() error {
	if c.MaxMessages < 0 || c.MaxTokens < 0 {
		return fmt.Errorf("history limits cannot be negative")
	}
	return nil
}

// MetricsConfig exposes prometheus metrics when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Normalize applies defaults to every section.
func (c Config) Normalize() Config {
	c.Log = c.Log.Normalize()
	c.Gateway = c.Gateway.Normalize()
	c.Prefs = c.Prefs.Normalize()
	c.Metrics.Addr = strings.TrimSpace(c.Metrics.Addr)
	return c
}

// Validate checks every section.
func (c Config) Validate() error {
	for _, validate := range []func() error{
		c.Log.Validate,
		c.Gateway.Validate,
		c.Prefs.Validate,
		c.History.Validate,
	} {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %v", assistant.ErrInvalidConfig, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("gateway.base_url", rest.DefaultBaseURL)
	v.SetDefault("gateway.timeout", rest.DefaultTimeout)
	v.SetDefault("prefs.driver", string(prefs.StoreTypeMemory))
	v.SetDefault("prefs.namespace", prefs.DefaultNamespace)
	v.SetDefault("prefs.key", prefs.LanguageKey)
	v.SetDefault("prefs.redis.addr", "")
	v.SetDefault("prefs.redis.password", "")
	v.SetDefault("prefs.redis.db", 0)
	v.SetDefault("prefs.redis.ttl", 0)
	v.SetDefault("prefs.supabase.url", "")
	v.SetDefault("prefs.supabase.api_key", "")
	v.SetDefault("prefs.supabase.table", supabase.DefaultTable)
	v.SetDefault("prefs.supabase.cache_ttl", 5*time.Minute)
	v.SetDefault("history.max_messages", 0)
	v.SetDefault("history.max_tokens", 0)
	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from path, or from assistant.{yaml,json,toml} in
// the working directory or ./config when path is empty. A missing default
// file is not an error; environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("assistant")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
