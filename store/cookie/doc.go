// Package cookie implements the cookie backend on top of net/http cookie jars.
//
// Store reads and writes one cookie per key at a configured site URL, passing
// through caller attributes (path, domain, expiry, secure, same-site). Values
// are URL-escaped so structured tokens survive cookie syntax. FileJar keeps a
// jar across restarts by snapshotting it to an afs URL, and WrapTransport lets
// an http.RoundTripper send and collect jar cookies.
package cookie
