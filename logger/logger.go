package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/creastat/assistant/config"
)

// New creates a zerolog.Logger for the assistant host and installs it as the
// global logger. Output goes to stderr so it never mixes with the chat transcript.
func New(cfg config.LogConfig) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = w
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	base := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "assistant").
		Logger().
		Level(level)

	log.Logger = base
	return base
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
