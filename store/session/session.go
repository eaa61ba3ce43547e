package session

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/sbam/internal/collection"
)

var (
	sessions    = collection.NewSyncMap[string, *collection.SyncMap[string, string]]()
	defaultOnce sync.Once
	defaultID   string
)

// Store is a session-scoped key/value store. Stores sharing an ID share content.
type Store struct {
	id string
}

// Option configures a Store.
type Option func(*Store)

// WithID binds the store to an existing session.
func WithID(id string) Option {
	return func(s *Store) {
		s.id = id
	}
}

// New returns a store for the session given by WithID, or for a fresh session.
func New(options ...Option) *Store {
	ret := &Store{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.id == "" {
		ret.id = uuid.NewString()
	}
	ret.items()
	return ret
}

// items returns the session content, registering the session when it was ended.
func (s *Store) items() *collection.SyncMap[string, string] {
	return sessions.GetOrPut(s.id, collection.NewSyncMap[string, string])
}

// Default returns the process-wide session store.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultID = uuid.NewString()
	})
	return New(WithID(defaultID))
}

// ID returns the session ID.
func (s *Store) ID() string { return s.id }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	items, ok := sessions.Get(s.id)
	if !ok {
		return "", false, nil
	}
	value, ok := items.Get(key)
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.items().Put(key, value)
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	if items, ok := sessions.Get(s.id); ok {
		items.Delete(key)
	}
	return nil
}

// Keys returns the session keys in sorted order.
func (s *Store) Keys() []string {
	items, ok := sessions.Get(s.id)
	if !ok {
		return nil
	}
	var keys []string
	items.Range(func(key string, _ string) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys held by the session.
func (s *Store) Len() int {
	if items, ok := sessions.Get(s.id); ok {
		return items.Len()
	}
	return 0
}

// Clear wipes every key of the session.
func (s *Store) Clear() {
	if items, ok := sessions.Get(s.id); ok {
		items.Clear()
	}
}

// End clears the session and forgets its ID. A later Set on any store with the
// same ID starts a fresh session under that ID.
func (s *Store) End() {
	if items, ok := sessions.Get(s.id); ok {
		items.Clear()
	}
	sessions.Delete(s.id)
}
