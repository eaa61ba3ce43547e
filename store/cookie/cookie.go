package cookie

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
)

// DefaultSiteURL is the site cookies are scoped to when none is given.
const DefaultSiteURL = "https://localhost/"

// errorJar is implemented by jars that persist their content, such as FileJar.
type errorJar interface {
	Err() error
}

// Store is a cookie accessor bound to a jar and a site.
type Store struct {
	jar     http.CookieJar
	site    *neturl.URL
	options *Options
}

// New creates a Store. A nil jar gets a fresh in-memory jar, nil options get DefaultOptions.
func New(jar http.CookieJar, siteURL string, options *Options) (*Store, error) {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	site, err := neturl.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie site URL %v: %w", siteURL, err)
	}
	if site.Host == "" {
		return nil, fmt.Errorf("invalid cookie site URL %v: missing host", siteURL)
	}
	if jar == nil {
		if jar, err = cookiejar.New(nil); err != nil {
			return nil, err
		}
	}
	if options == nil {
		options = DefaultOptions()
	}
	ret := &Store{jar: jar, site: site, options: options}
	if err = ret.checkScheme(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Jar returns the underlying cookie jar.
func (s *Store) Jar() http.CookieJar { return s.jar }

// Options returns the attributes used on Set and Remove.
func (s *Store) Options() *Options { return s.options }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	for _, c := range s.jar.Cookies(s.scope()) {
		if c.Name != key {
			continue
		}
		value, err := neturl.QueryUnescape(c.Value)
		if err != nil {
			return c.Value, true, nil
		}
		return value, true, nil
	}
	return "", false, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	c := s.options.cookie(key, neturl.QueryEscape(value))
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie %v: %w", key, err)
	}
	if err := s.checkScheme(); err != nil {
		return err
	}
	return s.setCookie(c)
}

func (s *Store) Remove(_ context.Context, key string) error {
	c := s.options.cookie(key, "")
	c.MaxAge = -1
	return s.setCookie(c)
}

func (s *Store) setCookie(c *http.Cookie) error {
	s.jar.SetCookies(s.scope(), []*http.Cookie{c})
	if persisted, ok := s.jar.(errorJar); ok {
		if err := persisted.Err(); err != nil {
			return fmt.Errorf("failed to store cookie %v: %w", c.Name, err)
		}
	}
	return nil
}

// checkScheme rejects secure cookies on a non-https site: the jar would accept
// them but never return them for that site.
func (s *Store) checkScheme() error {
	if s.options.Secure && s.site.Scheme != "https" {
		return fmt.Errorf("secure cookie requires https site, got %v", s.site.String())
	}
	return nil
}

func (s *Store) scope() *neturl.URL {
	u := *s.site
	u.Path = s.options.path()
	return &u
}
