// Package cli implements the `sbam` command: save, load, remove and migrate
// a token held by sbam.Manager from the shell.
//
// Usage:
//
//	sbam -t local -u file:///tmp/tokens.json save eyJhbGciOi...
//	sbam -t local -u file:///tmp/tokens.json load
//	sbam -t local -u file:///tmp/tokens.json migrate cookie
//	sbam -c config.yaml --format oauth2 remove
//
// The session backend only lives as long as the process, so it is mostly
// useful together with migrate.
package cli
