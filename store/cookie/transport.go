package cookie

import (
	"net/http"
)

// jarTransport attaches jar cookies to outgoing requests and stores response
// cookies back into the jar, for callers that use a RoundTripper directly
// instead of an http.Client with a Jar.
type jarTransport struct {
	inner http.RoundTripper
	jar   http.CookieJar
}

// WrapTransport wraps inner with jar cookie handling. A nil inner uses
// http.DefaultTransport; a nil jar returns inner unchanged.
func WrapTransport(inner http.RoundTripper, jar http.CookieJar) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	if jar == nil {
		return inner
	}
	return &jarTransport{inner: inner, jar: jar}
}

func (t *jarTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	outgoing := req.Clone(req.Context())
	for _, c := range t.jar.Cookies(outgoing.URL) {
		outgoing.AddCookie(c)
	}
	resp, err := t.inner.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		t.jar.SetCookies(outgoing.URL, cookies)
	}
	return resp, nil
}
