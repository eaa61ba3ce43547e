package cookie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
)

// FileJar is a cookiejar.Jar whose content is snapshotted to an afs URL on
// every update and rehydrated on startup. cookiejar.Jar cannot enumerate its
// entries, so FileJar keeps its own index of what was written.
type FileJar struct {
	mu    sync.Mutex
	inner *cookiejar.Jar
	url   string
	fs    afs.Service
	index map[string]persistedCookie
	err   error
}

// JarOption configures a FileJar.
type JarOption func(*FileJar)

// WithJarFS sets the afs service used for snapshot I/O.
func WithJarFS(fs afs.Service) JarOption {
	return func(j *FileJar) {
		j.fs = fs
	}
}

type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Host     string    `json:"host"`
	Domain   string    `json:"domain,omitempty"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
	SameSite int       `json:"sameSite,omitempty"`
}

type jarSnapshot struct {
	Cookies []persistedCookie `json:"cookies"`
}

func (p *persistedCookie) key() string {
	domain := p.Domain
	if domain == "" {
		domain = p.Host
	}
	return domain + "|" + p.Path + "|" + p.Name
}

func (p *persistedCookie) expired(now time.Time) bool {
	return !p.Expires.IsZero() && !now.Before(p.Expires)
}

// NewFileJar creates a jar persisted at URL, loading any existing snapshot.
func NewFileJar(ctx context.Context, URL string, options ...JarOption) (*FileJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &FileJar{inner: inner, url: URL, index: map[string]persistedCookie{}}
	for _, opt := range options {
		opt(j)
	}
	if j.fs == nil {
		j.fs = afs.New()
	}
	if err = j.load(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *FileJar) Cookies(u *neturl.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// SetCookies updates the jar and writes the snapshot. A failed write is kept
// and returned by Err.
func (j *FileJar) SetCookies(u *neturl.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	now := time.Now()
	for _, c := range cookies {
		pc := toPersisted(u, c, now)
		if c.MaxAge < 0 || pc.expired(now) {
			delete(j.index, pc.key())
			continue
		}
		j.index[pc.key()] = pc
	}
	j.err = j.save(context.Background())
}

// Err returns the last snapshot write error.
func (j *FileJar) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Flush writes the snapshot, dropping expired cookies.
func (j *FileJar) Flush(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.err = j.save(ctx)
	return j.err
}

func toPersisted(u *neturl.URL, c *http.Cookie, now time.Time) persistedCookie {
	host := u.Host
	if h, _, err := net.SplitHostPort(host); err == nil && h != "" {
		host = h
	}
	path := c.Path
	if path == "" || path[0] != '/' {
		path = defaultPath(u.Path)
	}
	expires := c.Expires
	if c.MaxAge > 0 {
		expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	return persistedCookie{
		Name:     c.Name,
		Value:    c.Value,
		Host:     strings.ToLower(host),
		Domain:   strings.ToLower(strings.TrimPrefix(c.Domain, ".")),
		Path:     path,
		Expires:  expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: int(c.SameSite),
	}
}

// defaultPath follows RFC 6265 section 5.1.4, as cookiejar does.
func defaultPath(path string) string {
	if len(path) == 0 || path[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/"
	}
	return path[:i]
}

func (j *FileJar) save(ctx context.Context) error {
	now := time.Now()
	snap := jarSnapshot{Cookies: make([]persistedCookie, 0, len(j.index))}
	for k, pc := range j.index {
		if pc.expired(now) {
			delete(j.index, k)
			continue
		}
		snap.Cookies = append(snap.Cookies, pc)
	}
	sort.Slice(snap.Cookies, func(a, b int) bool {
		return snap.Cookies[a].key() < snap.Cookies[b].key()
	})
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err = j.fs.Upload(ctx, j.url, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write cookie jar %v: %w", j.url, err)
	}
	return nil
}

func (j *FileJar) load(ctx context.Context) error {
	exists, err := j.fs.Exists(ctx, j.url)
	if err != nil {
		return fmt.Errorf("failed to check cookie jar %v: %w", j.url, err)
	}
	if !exists {
		return nil
	}
	data, err := j.fs.DownloadWithURL(ctx, j.url)
	if err != nil {
		return fmt.Errorf("failed to read cookie jar %v: %w", j.url, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var snap jarSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode cookie jar %v: %w", j.url, err)
	}
	now := time.Now()
	for _, pc := range snap.Cookies {
		if pc.expired(now) || pc.Host == "" {
			continue
		}
		scheme := "http"
		if pc.Secure {
			scheme = "https"
		}
		u := &neturl.URL{Scheme: scheme, Host: pc.Host, Path: pc.Path}
		j.inner.SetCookies(u, []*http.Cookie{{
			Name:     pc.Name,
			Value:    pc.Value,
			Domain:   pc.Domain,
			Path:     pc.Path,
			Expires:  pc.Expires,
			Secure:   pc.Secure,
			HttpOnly: pc.HttpOnly,
			SameSite: http.SameSite(pc.SameSite),
		}})
		j.index[pc.key()] = pc
	}
	return nil
}
