package followredirect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// sensitiveHeaders must not leak to a different origin just because a server
// redirected there.
var sensitiveHeaders = []string{"Authorization", "Cookie", "Cookie2", "Www-Authenticate"}

type decision int

const (
	decisionContinue decision = iota
	decisionReturn
)

// stateMachine owns the in-flight logical request across redirect hops. It
// is created once per top-level call and mutated in place; nothing else may
// touch its fields while the exchange is running.
type stateMachine struct {
	method     string
	url        *url.URL
	proto      string
	protoMajor int
	protoMinor int
	header     http.Header
	// body is nil while the original body is still being buffered, and
	// after a 303 dropped it.
	body               []byte
	remainingRedirects int
	normalizePorts     bool
}

// newStateMachine captures the request's method, URL and version, and takes
// its headers by move: after this call the original request carries an empty
// header map.
func newStateMachine(req *http.Request, maxRedirects int, normalizePorts bool) (*stateMachine, error) {
	if req.URL == nil {
		return nil, &RequestBuildError{Err: errors.New("request has no URL")}
	}
	if req.URL.Scheme == "" || req.URL.Host == "" {
		return nil, &RequestBuildError{Err: fmt.Errorf("request URL must be absolute, got %q", req.URL.String())}
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	m := &stateMachine{
		method:             method,
		url:                req.URL,
		proto:              req.Proto,
		protoMajor:         req.ProtoMajor,
		protoMinor:         req.ProtoMinor,
		header:             req.Header,
		remainingRedirects: maxRedirects,
		normalizePorts:     normalizePorts,
	}
	if m.header == nil {
		m.header = http.Header{}
	}
	req.Header = http.Header{}
	return m, nil
}

// setBody installs the buffered request body. Called once, after buffering
// completes, before the first send.
func (m *stateMachine) setBody(body []byte) {
	m.body = body
}

// wireRequest builds a transport-ready request from the current state. The
// in-flight headers are copied, not aliased, so the transport cannot disturb
// the next hop.
func (m *stateMachine) wireRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if m.body != nil {
		body = bytes.NewReader(m.body)
	}
	out, err := http.NewRequestWithContext(ctx, m.method, m.url.String(), body)
	if err != nil {
		return nil, &RequestBuildError{Err: err}
	}
	out.Proto = m.proto
	out.ProtoMajor = m.protoMajor
	out.ProtoMinor = m.protoMinor

	for k, values := range m.header {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, &RequestBuildError{Err: fmt.Errorf("invalid header name %q", k)}
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, &RequestBuildError{Err: fmt.Errorf("invalid value for header %q", k)}
			}
			out.Header.Add(k, v)
		}

		// Setting the Host header is a special case, see https://github.com/golang/go/issues/7682
		if strings.EqualFold(k, "Host") {
			out.Host = values[0]
		}
	}

	if m.body != nil {
		out.ContentLength = int64(len(m.body))
		buf := m.body
		out.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(buf)), nil
		}
	}
	return out, nil
}

// handleResponse decides whether the exchange continues with another hop or
// returns the response to the caller.
//
// 301, 302, 307 and 308 keep the method and body. 303 switches the method to
// GET and drops the buffered body, since a GET carries none. Everything else
// is terminal.
func (m *stateMachine) handleResponse(resp *http.Response) (decision, error) {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusPermanentRedirect:
		return m.followRedirect(resp)
	case http.StatusFound, http.StatusTemporaryRedirect:
		return m.followRedirect(resp)
	case http.StatusSeeOther:
		m.method = http.MethodGet
		m.body = nil
		return m.followRedirect(resp)
	default:
		return decisionReturn, nil
	}
}

func (m *stateMachine) followRedirect(resp *http.Response) (decision, error) {
	if m.remainingRedirects == 0 {
		return decisionReturn, nil
	}
	m.remainingRedirects--

	location := resp.Header.Values("Location")
	if len(location) == 0 {
		// A redirect status without a target is handed back to the
		// caller as-is.
		return decisionReturn, nil
	}
	next, err := resolveLocation(m.url, location[0])
	if err != nil {
		return decisionReturn, err
	}
	removeSensitiveHeaders(m.header, next, m.url, m.normalizePorts)
	m.url = next
	return decisionContinue, nil
}

// removeSensitiveHeaders strips authentication and cookie headers when the
// redirect target differs from the previous URL in host or port.
func removeSensitiveHeaders(header http.Header, next, previous *url.URL, normalizePorts bool) {
	if sameHost(next, previous, normalizePorts) {
		return
	}
	for _, name := range sensitiveHeaders {
		header.Del(name)
	}
}
