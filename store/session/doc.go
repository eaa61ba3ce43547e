// Package session implements the session-scoped backend: an in-process store
// whose lifetime is bound to a session ID rather than to disk.
//
// Stores created with the same ID share state, mirroring how every page of a
// browser tab sees the same sessionStorage. Nothing is persisted; ending the
// process ends every session.
package session
