package sbam

import (
	"context"
	"fmt"
	"net/http"

	"github.com/viant/sbam/store"
	"github.com/viant/sbam/store/cookie"
	"github.com/viant/sbam/store/local"
	"github.com/viant/sbam/store/session"
)

// backendFor returns the injected accessor for kind, building and caching the
// default one on first use.
func (m *Manager[T]) backendFor(ctx context.Context, kind store.Kind) (store.Backend, error) {
	if backend, ok := m.backends[kind]; ok {
		return backend, nil
	}
	var backend store.Backend
	switch kind {
	case store.Local:
		URL := m.config.LocalURL
		if URL == "" {
			var err error
			if URL, err = local.DefaultURL(); err != nil {
				return nil, err
			}
		}
		var options []local.Option
		if m.fs != nil {
			options = append(options, local.WithFS(m.fs))
		}
		backend = local.New(URL, options...)
	case store.Session:
		if m.config.SessionID != "" {
			backend = session.New(session.WithID(m.config.SessionID))
		} else {
			backend = session.Default()
		}
	case store.Cookie:
		var jar http.CookieJar
		if m.config.CookieJarURL != "" {
			var options []cookie.JarOption
			if m.fs != nil {
				options = append(options, cookie.WithJarFS(m.fs))
			}
			fileJar, err := cookie.NewFileJar(ctx, m.config.CookieJarURL, options...)
			if err != nil {
				return nil, err
			}
			jar = fileJar
		}
		options := m.config.Cookie
		if options == nil {
			options = cookie.DefaultOptions()
		}
		cookieStore, err := cookie.New(jar, m.config.CookieURL, options)
		if err != nil {
			return nil, err
		}
		backend = cookieStore
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownKind, kind)
	}
	m.backends[kind] = backend
	return backend, nil
}

func (m *Manager[T]) persist(ctx context.Context, backend store.Backend, token T) error {
	value, err := encode(token)
	if err != nil {
		return err
	}
	return backend.Set(ctx, m.key, value)
}
