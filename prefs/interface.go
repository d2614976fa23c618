package prefs

import "context"

// LanguageKey is the storage key under which the chosen response language is kept.
const LanguageKey = "ulss9_chat_language"

// Store is a durable key-value capability for small client preferences.
type Store interface {
	// Get returns the value stored under key.
	// Returns an empty string if the key is not set (not an error).
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error

	// Close closes the store and releases any resources.
	Close() error
}
