// Package store defines the backend contract used by the token manager in the
// parent `sbam` package.
//
// Three backend kinds ship as sub-packages:
//   - `local`   – persistent key/value snapshot behind an afs URL
//   - `session` – process-scoped, session-ID keyed memory store
//   - `cookie`  – cookie accessor over an http.CookieJar
//
// Any type with Get/Set/Remove can be injected instead, which keeps the manager
// testable without touching the file system.
package store
