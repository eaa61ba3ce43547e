package store

import (
	"context"
	"errors"
	"strings"
)

// Kind identifies a backend family.
type Kind string

const (
	Local   Kind = "local"
	Session Kind = "session"
	Cookie  Kind = "cookie"
)

// ErrUnknownKind is returned when no backend can be built for a kind.
var ErrUnknownKind = errors.New("unknown storage kind")

// Backend is a pluggable string key/value accessor. Get reports false when the key is absent.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ParseKind maps user input (including the browser-style names localStorage
// and sessionStorage) to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local", "localstorage":
		return Local, nil
	case "session", "sessionstorage", "":
		return Session, nil
	case "cookie", "cookies":
		return Cookie, nil
	}
	return "", ErrUnknownKind
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Local, Session, Cookie:
		return true
	}
	return false
}
