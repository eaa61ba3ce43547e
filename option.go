package sbam

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/sbam/store"
	"github.com/viant/sbam/store/cookie"
)

// Option configures a Manager.
type Option func(s *settings)

type settings struct {
	config   Config
	backends map[store.Kind]store.Backend
	fs       afs.Service
	logger   *slog.Logger
	validate any
	onSave   any
	onRemove any
}

// WithStorageType selects the backend kind.
func WithStorageType(kind store.Kind) Option {
	return func(s *settings) {
		s.config.StorageType = string(kind)
	}
}

// WithStorageKey sets the key the token is stored under.
func WithStorageKey(key string) Option {
	return func(s *settings) {
		s.config.StorageKey = key
	}
}

// WithCookieOptions sets the attributes used by the cookie backend.
func WithCookieOptions(options *cookie.Options) Option {
	return func(s *settings) {
		s.config.Cookie = options
	}
}

// WithBackend injects the accessor used for kind instead of building the default one.
func WithBackend(kind store.Kind, backend store.Backend) Option {
	return func(s *settings) {
		s.backends[kind] = backend
	}
}

// WithConfig applies non-empty fields of config.
func WithConfig(config *Config) Option {
	return func(s *settings) {
		s.config.merge(config)
	}
}

// WithFS sets the afs service used by the local backend and the cookie jar.
func WithFS(fs afs.Service) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithValidator replaces the default non-zero check.
func WithValidator[T any](validate func(candidate T) bool) Option {
	return func(s *settings) {
		s.validate = validate
	}
}

// OnSave registers a callback fired after a successful save.
func OnSave[T any](fn func(token T)) Option {
	return func(s *settings) {
		s.onSave = fn
	}
}

// OnRemove registers a callback fired before the token is removed; ok is false when no token was held.
func OnRemove[T any](fn func(previous T, ok bool)) Option {
	return func(s *settings) {
		s.onRemove = fn
	}
}
