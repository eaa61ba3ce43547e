package sbam

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/sbam/store"
	"github.com/viant/sbam/validator"
)

// Manager holds one token of type T and mirrors it to a storage backend.
// It is meant for a single owner; backends may be shared.
type Manager[T any] struct {
	key      string
	kind     store.Kind
	backend  store.Backend
	backends map[store.Kind]store.Backend
	config   Config
	fs       afs.Service
	logger   *slog.Logger

	validate func(candidate T) bool
	onSave   func(token T)
	onRemove func(previous T, ok bool)

	token    T
	hasToken bool
}

// New creates a Manager and loads any token already held by the selected backend.
func New[T any](ctx context.Context, options ...Option) (*Manager[T], error) {
	s := &settings{backends: map[store.Kind]store.Backend{}}
	for _, opt := range options {
		opt(s)
	}
	m := &Manager[T]{
		key:      s.config.StorageKey,
		backends: s.backends,
		config:   s.config,
		fs:       s.fs,
		logger:   s.logger,
		validate: validator.NonZero[T],
	}
	if m.key == "" {
		m.key = DefaultStorageKey
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if err := m.bind(s); err != nil {
		return nil, err
	}
	kind, err := store.ParseKind(s.config.StorageType)
	if err != nil {
		m.logger.Warn("unknown storage type, using session", "type", s.config.StorageType)
		kind = store.Session
	}
	if m.backend, err = m.backendFor(ctx, kind); err != nil {
		return nil, fmt.Errorf("failed to initialize %v backend: %w", kind, err)
	}
	m.kind = kind
	if token, ok := m.Load(ctx); ok {
		m.token, m.hasToken = token, true
	}
	return m, nil
}

func (m *Manager[T]) bind(s *settings) error {
	var zero T
	if s.validate != nil {
		fn, ok := s.validate.(func(T) bool)
		if !ok {
			return fmt.Errorf("invalid validator %T for token type %T", s.validate, zero)
		}
		m.validate = fn
	}
	if s.onSave != nil {
		fn, ok := s.onSave.(func(T))
		if !ok {
			return fmt.Errorf("invalid onSave callback %T for token type %T", s.onSave, zero)
		}
		m.onSave = fn
	}
	if s.onRemove != nil {
		fn, ok := s.onRemove.(func(T, bool))
		if !ok {
			return fmt.Errorf("invalid onRemove callback %T for token type %T", s.onRemove, zero)
		}
		m.onRemove = fn
	}
	return nil
}

// Key returns the storage key.
func (m *Manager[T]) Key() string { return m.key }

// Kind returns the current backend kind.
func (m *Manager[T]) Kind() store.Kind { return m.kind }

// Token returns the in-memory token.
func (m *Manager[T]) Token() (T, bool) {
	return m.token, m.hasToken
}

// SetToken replaces the in-memory token without persisting it.
func (m *Manager[T]) SetToken(token T) {
	m.token, m.hasToken = token, true
}

// ClearToken drops the in-memory token without touching the backend.
func (m *Manager[T]) ClearToken() {
	var zero T
	m.token, m.hasToken = zero, false
}

// Validate reports whether candidate may be stored. A panicking validator counts as a rejection.
func (m *Manager[T]) Validate(candidate T) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("token validator panicked", "key", m.key, "err", fmt.Errorf("%v", r))
			valid = false
		}
	}()
	return m.validate(candidate)
}

// Save validates, persists and keeps token, then fires the save callback.
func (m *Manager[T]) Save(ctx context.Context, token T) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("failed to save token", "key", m.key, "kind", m.kind, "err", fmt.Errorf("%v", r))
			ok = false
		}
	}()
	if !m.Validate(token) {
		m.logger.Debug("token rejected", "key", m.key, "kind", m.kind)
		return false
	}
	if err := m.persist(ctx, m.backend, token); err != nil {
		m.logger.Error("failed to save token", "key", m.key, "kind", m.kind, "err", err)
		return false
	}
	m.token, m.hasToken = token, true
	if m.onSave != nil {
		m.onSave(token)
	}
	return true
}

// Login is an alias of Save.
func (m *Manager[T]) Login(ctx context.Context, token T) bool {
	return m.Save(ctx, token)
}

// Load reads the token from the backend. It does not change the in-memory token.
func (m *Manager[T]) Load(ctx context.Context) (T, bool) {
	var zero T
	raw, ok, err := m.backend.Get(ctx, m.key)
	if err != nil {
		m.logger.Warn("failed to load token", "key", m.key, "kind", m.kind, "err", err)
		return zero, false
	}
	if !ok || raw == "" {
		return zero, false
	}
	token, ok := decode[T](raw)
	if !ok || !m.Validate(token) {
		return zero, false
	}
	return token, true
}

// Remove fires the remove callback with the current token, then clears memory
// and the backend entry.
func (m *Manager[T]) Remove(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("failed to remove token", "key", m.key, "kind", m.kind, "err", fmt.Errorf("%v", r))
			ok = false
		}
	}()
	if m.onRemove != nil {
		m.onRemove(m.token, m.hasToken)
	}
	m.ClearToken()
	if err := m.backend.Remove(ctx, m.key); err != nil {
		m.logger.Error("failed to remove token", "key", m.key, "kind", m.kind, "err", err)
		return false
	}
	return true
}

// Logout is an alias of Remove.
func (m *Manager[T]) Logout(ctx context.Context) bool {
	return m.Remove(ctx)
}

// Migrate moves the token to another backend kind. The token is written to the
// new backend before it is erased from the old one; if the write fails the
// old backend stays current and still holds the token.
func (m *Manager[T]) Migrate(ctx context.Context, kind store.Kind) error {
	if kind == m.kind {
		return nil
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", store.ErrUnknownKind, kind)
	}
	next, err := m.backendFor(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to initialize %v backend: %w", kind, err)
	}
	if m.hasToken {
		if err = m.persist(ctx, next, m.token); err != nil {
			m.logger.Error("failed to migrate token", "key", m.key, "from", m.kind, "to", kind, "err", err)
			return fmt.Errorf("failed to write token to %v backend: %w", kind, err)
		}
	}
	previous, previousKind := m.backend, m.kind
	m.backend, m.kind = next, kind
	if err = previous.Remove(ctx, m.key); err != nil {
		m.logger.Warn("failed to erase token from previous backend", "key", m.key, "kind", previousKind, "err", err)
	}
	m.logger.Info("token storage migrated", "key", m.key, "from", previousKind, "to", kind)
	return nil
}
