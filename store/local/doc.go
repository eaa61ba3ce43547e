// Package local implements the persistent backend. All keys live in a single
// JSON snapshot object addressed by an afs URL, so the same code serves
// `file://` paths on disk and `mem://` objects in tests.
package local
