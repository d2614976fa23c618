package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/creastat/assistant/config"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, parseLevel(""))
	require.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestNewJSON(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := newWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Warn().Str("conversation_id", "c1").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "assistant", entry["service"])
	require.Equal(t, "c1", entry["conversation_id"])
}

func TestNewConsole(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := newWithWriter(config.LogConfig{Level: "debug", Format: "console"}, &buf)
	l.Debug().Msg("hello")
	require.Contains(t, buf.String(), "hello")
}
