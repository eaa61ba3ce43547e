package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/viant/afs"
)

// Store persists key/value pairs to a JSON snapshot. The snapshot is re-read on
// every call, so separate processes sharing a URL see the last writer's state.
type Store struct {
	mu  sync.RWMutex
	url string
	fs  afs.Service
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the afs service used for snapshot I/O.
func WithFS(fs afs.Service) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

type snapshot struct {
	Items map[string]string `json:"items"`
}

// DefaultURL returns the snapshot location under the user config directory.
func DefaultURL() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return "file://" + filepath.ToSlash(filepath.Join(dir, "sbam", "local.json")), nil
}

// New creates a Store persisting at URL.
func New(URL string, options ...Option) *Store {
	ret := &Store{url: URL}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// URL returns the snapshot location.
func (s *Store) URL() string { return s.url }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok := snap.Items[key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	snap.Items[key] = value
	return s.save(ctx, snap)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := snap.Items[key]; !ok {
		return nil
	}
	delete(snap.Items, key)
	if len(snap.Items) == 0 {
		if err = s.fs.Delete(ctx, s.url); err != nil {
			return fmt.Errorf("failed to delete snapshot %v: %w", s.url, err)
		}
		return nil
	}
	return s.save(ctx, snap)
}

// Keys returns stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(snap.Items))
	for k := range snap.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// ---- persistence ----

func (s *Store) load(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{Items: map[string]string{}}
	exists, err := s.fs.Exists(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot %v: %w", s.url, err)
	}
	if !exists {
		return snap, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %v: %w", s.url, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, nil
	}
	if err = json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %v: %w", s.url, err)
	}
	if snap.Items == nil {
		snap.Items = map[string]string{}
	}
	return snap, nil
}

func (s *Store) save(ctx context.Context, snap *snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err = s.fs.Upload(ctx, s.url, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot %v: %w", s.url, err)
	}
	return nil
}
