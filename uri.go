package followredirect

import (
	"net/url"
	"unicode/utf8"
)

// resolveLocation computes the absolute URL of the next hop from the raw
// value of a Location header. Only the scheme and authority are inherited
// from the current URL: the location's path and query are taken verbatim,
// never merged with the old path, so "/x" against "http://a.com/p?q" yields
// "http://a.com/x" (which is why this is not url.ResolveReference).
func resolveLocation(current *url.URL, location string) (*url.URL, error) {
	if location == "" || !utf8.ValidString(location) {
		return nil, &InvalidLocationError{Location: location}
	}
	next, err := url.Parse(location)
	if err != nil {
		return nil, &InvalidLocationError{Location: location}
	}
	if next.Opaque != "" {
		// e.g. "mailto:x@y" - not a target we can request.
		return nil, &InvalidLocationError{Location: location}
	}
	// A fragment-only reference contributes no request target at all.
	if next.Scheme == "" && next.Host == "" && next.Path == "" && next.RawQuery == "" {
		return nil, &InvalidLocationError{Location: location}
	}
	if next.Scheme == "" {
		next.Scheme = current.Scheme
	}
	if next.Host == "" {
		next.Host = current.Host
		next.User = current.User
	}
	return next, nil
}

// sameHost reports whether two URLs share host and port. With normalizePorts
// set, an absent port counts as the scheme's default port, so
// "http://a.com" and "http://a.com:80" compare equal; otherwise the
// comparison is literal.
func sameHost(a, b *url.URL, normalizePorts bool) bool {
	if a.Hostname() != b.Hostname() {
		return false
	}
	if normalizePorts {
		return effectivePort(a) == effectivePort(b)
	}
	return a.Port() == b.Port()
}

func effectivePort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	switch u.Scheme {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	}
	return ""
}
