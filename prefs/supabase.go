package prefs

import (
	"context"

	"github.com/pkg/errors"

	"github.com/creastat/assistant/supabase"
)

// SupabaseStore implements Store on top of the Supabase preferences table.
type SupabaseStore struct {
	store     supabase.Store
	namespace string
}

// NewSupabaseStore creates a preference store scoped to one visitor.
func NewSupabaseStore(store supabase.Store, namespace string) *SupabaseStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &SupabaseStore{store: store, namespace: namespace}
}

// Get implements Store.
func (s *SupabaseStore) Get(ctx context.Context, key string) (string, error) {
	pref, err := s.store.GetPreference(ctx, s.namespace, key)
	if err != nil {
		return "", errors.Wrap(err, "supabase get preference")
	}
	if pref == nil {
		return "", nil
	}
	return pref.Value, nil
}

// Set implements Store.
func (s *SupabaseStore) Set(ctx context.Context, key, value string) error {
	err := s.store.UpsertPreference(ctx, supabase.Preference{
		VisitorID: s.namespace,
		Key:       key,
		Value:     value,
	})
	return errors.Wrap(err, "supabase set preference")
}

// Clear implements Store.
func (s *SupabaseStore) Clear(ctx context.Context, key string) error {
	return errors.Wrap(s.store.DeletePreference(ctx, s.namespace, key), "supabase clear preference")
}

// Close implements Store.
func (s *SupabaseStore) Close() error {
	return s.store.Close()
}

var _ Store = (*SupabaseStore)(nil)
