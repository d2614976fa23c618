package controller

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/creastat/assistant/prefs"
	"github.com/creastat/assistant/session"
)

// Option is a functional option for configuring a Controller.
type Option func(*controllerConfig)

// controllerConfig holds configuration for the controller.
type controllerConfig struct {
	logger         zerolog.Logger
	observer       func(session.State)
	limits         session.Limits
	storageKey     string
	conversationID func() string
}

func defaultConfig() *controllerConfig {
	return &controllerConfig{
		logger:         zerolog.Nop(),
		storageKey:     prefs.LanguageKey,
		conversationID: newConversationID,
	}
}

// WithLogger sets the logger used for failures and dropped results.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *controllerConfig) {
		c.logger = logger
	}
}

// WithObserver registers fn to receive a snapshot after every state change.
// fn is called without the controller lock held, so it may call back into the controller.
func WithObserver(fn func(session.State)) Option {
	return func(c *controllerConfig) {
		c.observer = fn
	}
}

// WithLimits bounds the retained conversation history.
func WithLimits(limits session.Limits) Option {
	return func(c *controllerConfig) {
		c.limits = limits
	}
}

// WithStorageKey overrides the preference key holding the chosen language.
func WithStorageKey(key string) Option {
	return func(c *controllerConfig) {
		if key != "" {
			c.storageKey = key
		}
	}
}

// WithConversationIDs sets the generator for conversation ids.
func WithConversationIDs(fn func() string) Option {
	return func(c *controllerConfig) {
		if fn != nil {
			c.conversationID = fn
		}
	}
}

func newConversationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
