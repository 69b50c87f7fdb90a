// Package followredirect wraps an HTTP transport with a client that follows
// redirects.
//
// All five redirect styles of the HTTP/1.1 spec are supported: the permanent
// redirects (301 and 308) as well as the temporary ones (302, 303 and 307).
// A 303 See Other response switches the request method to GET and discards
// the request body before following the redirect.
//
// The next URL is taken from the Location header of the response. Both
// relative (without a hostname) and absolute URLs are supported. When a
// response carries a redirect status code but no Location header, the
// response is returned to the caller, who can detect the situation from the
// status code and headers.
//
// To be able to replay the request body on redirects other than 303, the
// client buffers the whole body in memory before the first request is sent.
//
// To avoid following an endless chain of redirects, the client stops after a
// maximum number of hops and returns the last response to the caller.
//
// To protect authentication and session information, the Authorization,
// Cookie, Cookie2 and WWW-Authenticate headers are stripped when a redirect
// crosses to a different host or port. Redirects to the same host and port
// but a different path retain them.
//
//	client := followredirect.New(http.DefaultTransport)
//	resp, err := client.Get("https://httpbin.org/redirect/3")
package followredirect

import (
	"log"
	"net/http"
	"os"
	"time"
)

// DefaultMaxRedirects is the limit on the number of redirects followed by a
// Client unless configured otherwise.
const DefaultMaxRedirects = 10

// A Client sends HTTP requests through an underlying transport and
// transparently follows redirects until a non-redirect response is reached,
// the redirect limit is hit, or the server omits a Location header.
//
// The underlying transport must not follow redirects itself; a plain
// http.Transport qualifies, an *http.Client does not.
//
// The fluent setters are not safe for concurrent use; configure the Client
// first, then share it. Each call owns its own in-flight state, so
// concurrent Get/Do calls are fine.
type Client struct {
	transport             http.RoundTripper
	maxRedirects          int
	normalizeDefaultPorts bool

	header    http.Header
	cookies   []*http.Cookie
	basicAuth basicAuth

	logger         Logger
	debug          bool
	curlCommand    bool
	isMock         bool
	statsCollector func(Stats)

	errs []error
}

// Stats describes one completed call, including every followed hop.
type Stats struct {
	// Requests is the number of wire requests sent, i.e. hops + 1.
	Requests int
	// RequestBytes is the size of the buffered request body.
	RequestBytes int64
	// Duration covers body buffering through the final response.
	Duration time.Duration
}

// New wraps the given transport in a Client that follows up to
// DefaultMaxRedirects redirects.
func New(transport http.RoundTripper) *Client {
	debug := os.Getenv("FOLLOWREDIRECT_DEBUG") == "1"

	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		transport:    transport,
		maxRedirects: DefaultMaxRedirects,
		header:       http.Header{},
		cookies:      make([]*http.Cookie, 0),
		logger:       log.New(os.Stderr, "[followredirect]", log.LstdFlags),
		debug:        debug,
	}
}

// NewMax wraps the given transport in a Client that follows up to max
// redirects.
func NewMax(transport http.RoundTripper, max int) *Client {
	c := New(transport)
	c.SetMaxRedirects(max)
	return c
}

// MaxRedirects returns the number of redirects the client will follow before
// giving up.
func (c *Client) MaxRedirects() int {
	return c.maxRedirects
}

// SetMaxRedirects sets the number of redirects the client will follow before
// giving up. By default this limit is DefaultMaxRedirects.
func (c *Client) SetMaxRedirects(max int) *Client {
	c.maxRedirects = max
	return c
}

// SetNormalizeDefaultPorts controls whether an absent port counts as the
// scheme's default port when deciding if a redirect stays on the same host
// and port. With it off (the default), "http://a.com" and "http://a.com:80"
// are different origins and sensitive headers are stripped between them.
func (c *Client) SetNormalizeDefaultPorts(enable bool) *Client {
	c.normalizeDefaultPorts = enable
	return c
}

// CollectStats registers a callback invoked with the Stats of every
// completed call.
func (c *Client) CollectStats(collector func(Stats)) *Client {
	c.statsCollector = collector
	return c
}

// Get sends a GET request to targetUrl and follows redirects.
func (c *Client) Get(targetUrl string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, targetUrl, nil)
	if err != nil {
		return nil, &RequestBuildError{Err: err}
	}
	return c.Do(req)
}

// Do sends the request and follows redirects. The request's headers are
// taken over by the in-flight state; the passed request must not be reused.
// Default headers, basic auth and cookies configured on the Client are
// applied first, without overriding what the request already carries.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if len(c.errs) != 0 {
		return nil, c.errs[0]
	}
	c.applyDefaults(req)
	return newExchange(c, req).run()
}

// RoundTrip makes the Client itself an http.RoundTripper, so it can be
// dropped in wherever a transport is expected.
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	return c.Do(req)
}

func (c *Client) applyDefaults(req *http.Request) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	for k, values := range c.header {
		if req.Header.Get(k) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if (c.basicAuth.Username != "" || c.basicAuth.Password != "") && req.Header.Get("Authorization") == "" {
		req.SetBasicAuth(c.basicAuth.Username, c.basicAuth.Password)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
}
