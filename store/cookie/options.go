package cookie

import (
	"net/http"
	"strings"
	"time"
)

// Options holds cookie attributes applied on Set and Remove.
type Options struct {
	Path     string    `yaml:"path,omitempty" json:"path,omitempty"`
	Domain   string    `yaml:"domain,omitempty" json:"domain,omitempty"`
	Expires  time.Time `yaml:"expires,omitempty" json:"expires,omitempty"`
	MaxAge   int       `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
	Secure   bool      `yaml:"secure,omitempty" json:"secure,omitempty"`
	HttpOnly bool      `yaml:"httpOnly,omitempty" json:"httpOnly,omitempty"`
	SameSite string    `yaml:"sameSite,omitempty" json:"sameSite,omitempty"` // strict, lax or none
}

// DefaultOptions returns root path with a strict same-site policy.
func DefaultOptions() *Options {
	return &Options{Path: "/", SameSite: "strict"}
}

func (o *Options) path() string {
	if o.Path == "" {
		return "/"
	}
	return o.Path
}

func (o *Options) sameSite() http.SameSite {
	switch strings.ToLower(o.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteDefaultMode
}

func (o *Options) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.path(),
		Domain:   o.Domain,
		Expires:  o.Expires,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.sameSite(),
	}
}
