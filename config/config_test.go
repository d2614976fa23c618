package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway/rest"
	"github.com/creastat/assistant/prefs"
	"github.com/creastat/assistant/supabase"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, rest.DefaultBaseURL, cfg.Gateway.BaseURL)
	require.Equal(t, rest.DefaultTimeout, cfg.Gateway.Timeout)
	require.Equal(t, string(prefs.StoreTypeMemory), cfg.Prefs.Driver)
	require.Equal(t, prefs.DefaultNamespace, cfg.Prefs.Namespace)
	require.Equal(t, prefs.LanguageKey, cfg.Prefs.Key)
	require.Equal(t, supabase.DefaultTable, cfg.Prefs.Supabase.Table)
	require.Zero(t, cfg.History.MaxMessages)
	require.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: DEBUG
  format: json
gateway:
  base_url: https://assistente.aulss9.veneto.it/api/
  timeout: 15s
prefs:
  driver: redis
  namespace: kiosk-1
  redis:
    addr: localhost:6379
    ttl: 24h
history:
  max_messages: 40
metrics:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "https://assistente.aulss9.veneto.it/api", cfg.Gateway.BaseURL)
	require.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
	require.Equal(t, "redis", cfg.Prefs.Driver)
	require.Equal(t, "kiosk-1", cfg.Prefs.Namespace)
	require.Equal(t, "localhost:6379", cfg.Prefs.Redis.Addr)
	require.Equal(t, 24*time.Hour, cfg.Prefs.Redis.TTL)
	require.Equal(t, 40, cfg.History.MaxMessages)
	require.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "gateway:\n  base_url: http://file.example/api\n")
	t.Setenv("ASSISTANT_GATEWAY_BASE_URL", "http://env.example/api")
	t.Setenv("ASSISTANT_PREFS_DRIVER", "supabase")
	t.Setenv("ASSISTANT_PREFS_SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("ASSISTANT_PREFS_SUPABASE_API_KEY", "anon")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://env.example/api", cfg.Gateway.BaseURL)
	require.Equal(t, "supabase", cfg.Prefs.Driver)
	require.Equal(t, "anon", cfg.Prefs.Supabase.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad url", "gateway:\n  base_url: ftp://example.org\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"unknown driver", "prefs:\n  driver: sqlite\n"},
		{"redis without addr", "prefs:\n  driver: redis\n"},
		{"supabase without key", "prefs:\n  driver: supabase\n  supabase:\n    url: https://x.supabase.co\n"},
		{"negative history", "history:\n  max_tokens: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, assistant.ErrInvalidConfig)
		})
	}
}
