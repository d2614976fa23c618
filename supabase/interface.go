package supabase

import (
	"context"
	"time"
)

// Store provides access to the widget preferences table.
type Store interface {
	// GetPreference retrieves a visitor preference.
	// Returns nil if the preference is not set (not an error).
	GetPreference(ctx context.Context, visitorID, key string) (*Preference, error)

	// UpsertPreference creates or replaces a visitor preference
	UpsertPreference(ctx context.Context, pref Preference) error

	// DeletePreference removes a visitor preference
	DeletePreference(ctx context.Context, visitorID, key string) error

	// Close closes the Supabase client and releases resources
	Close() error
}

// Preference represents a row of the preferences table.
// The table has a unique constraint on (visitor_id, key).
type Preference struct {
	VisitorID string    `json:"visitor_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
