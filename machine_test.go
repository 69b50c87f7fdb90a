package followredirect

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T, method, rawurl string, maxRedirects int) *stateMachine {
	t.Helper()
	req, err := http.NewRequest(method, rawurl, nil)
	require.NoError(t, err)
	m, err := newStateMachine(req, maxRedirects, false)
	require.NoError(t, err)
	return m
}

func redirectResponse(status int, location string) *http.Response {
	resp := &http.Response{StatusCode: status, Header: http.Header{}}
	if location != "" {
		resp.Header.Set("Location", location)
	}
	return resp
}

func TestStateMachine_TakesHeadersByMove(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.org/", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")

	m, err := newStateMachine(req, 5, false)
	require.NoError(t, err)
	require.Equal(t, "application/json", m.header.Get("Accept"))
	require.Empty(t, req.Header)
}

func TestStateMachine_RejectsRelativeURL(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/relative", nil)
	require.NoError(t, err)
	_, err = newStateMachine(req, 5, false)
	var buildErr *RequestBuildError
	require.ErrorAs(t, err, &buildErr)
}

func TestStateMachine_DecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected decision
	}{
		{"301 follows", http.StatusMovedPermanently, decisionContinue},
		{"302 follows", http.StatusFound, decisionContinue},
		{"303 follows", http.StatusSeeOther, decisionContinue},
		{"307 follows", http.StatusTemporaryRedirect, decisionContinue},
		{"308 follows", http.StatusPermanentRedirect, decisionContinue},
		{"200 returns", http.StatusOK, decisionReturn},
		{"202 returns", http.StatusAccepted, decisionReturn},
		{"304 returns", http.StatusNotModified, decisionReturn},
		{"404 returns", http.StatusNotFound, decisionReturn},
		{"500 returns", http.StatusInternalServerError, decisionReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
			d, err := m.handleResponse(redirectResponse(tt.status, "/next"))
			require.NoError(t, err)
			require.Equal(t, tt.expected, d)
		})
	}
}

func TestStateMachine_SeeOtherForcesGetAndDropsBody(t *testing.T) {
	m := newTestMachine(t, http.MethodPost, "http://example.org/submit", 5)
	m.setBody([]byte("payload"))

	d, err := m.handleResponse(redirectResponse(http.StatusSeeOther, "/done"))
	require.NoError(t, err)
	require.Equal(t, decisionContinue, d)
	require.Equal(t, http.MethodGet, m.method)
	require.Nil(t, m.body)
	require.Equal(t, "http://example.org/done", m.url.String())
}

func TestStateMachine_KeepsMethodAndBodyOn307(t *testing.T) {
	m := newTestMachine(t, http.MethodPut, "http://example.org/submit", 5)
	m.setBody([]byte("payload"))

	d, err := m.handleResponse(redirectResponse(http.StatusTemporaryRedirect, "/retry"))
	require.NoError(t, err)
	require.Equal(t, decisionContinue, d)
	require.Equal(t, http.MethodPut, m.method)
	require.Equal(t, []byte("payload"), m.body)
}

func TestStateMachine_BudgetExhaustion(t *testing.T) {
	m := newTestMachine(t, http.MethodGet, "http://example.org/", 2)

	for i := 0; i < 2; i++ {
		d, err := m.handleResponse(redirectResponse(http.StatusFound, "/hop"))
		require.NoError(t, err)
		require.Equal(t, decisionContinue, d)
	}
	require.Equal(t, 0, m.remainingRedirects)

	// The budget is spent: the redirect response itself is handed back.
	d, err := m.handleResponse(redirectResponse(http.StatusFound, "/hop"))
	require.NoError(t, err)
	require.Equal(t, decisionReturn, d)
	require.Equal(t, 0, m.remainingRedirects)
}

func TestStateMachine_MissingLocationReturns(t *testing.T) {
	m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
	d, err := m.handleResponse(redirectResponse(http.StatusMovedPermanently, ""))
	require.NoError(t, err)
	require.Equal(t, decisionReturn, d)
	// The hop was still consumed.
	require.Equal(t, 4, m.remainingRedirects)
}

func TestStateMachine_InvalidLocationFails(t *testing.T) {
	m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
	resp := &http.Response{StatusCode: http.StatusFound, Header: http.Header{}}
	resp.Header.Set("Location", "http://a b.com/x")

	_, err := m.handleResponse(resp)
	var invalid *InvalidLocationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "http://a b.com/x", invalid.Location)
}

func TestStateMachine_HeaderStripping(t *testing.T) {
	tests := []struct {
		name     string
		location string
		stripped bool
	}{
		{"same host and port", "/other", false},
		{"same host different path", "http://example.org/deep/path", false},
		{"different host", "http://other.example/x", true},
		{"different port", "http://example.org:8080/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
			m.header.Set("Authorization", "Bearer token")
			m.header.Set("Cookie", "session=1")
			m.header.Set("Cookie2", "legacy=1")
			m.header.Set("Www-Authenticate", "Basic")
			m.header.Set("X-Custom", "kept")

			d, err := m.handleResponse(redirectResponse(http.StatusFound, tt.location))
			require.NoError(t, err)
			require.Equal(t, decisionContinue, d)

			for _, name := range sensitiveHeaders {
				if tt.stripped {
					require.Empty(t, m.header.Get(name), name)
				} else {
					require.NotEmpty(t, m.header.Get(name), name)
				}
			}
			require.Equal(t, "kept", m.header.Get("X-Custom"))
		})
	}
}

func TestStateMachine_WireRequest(t *testing.T) {
	m := newTestMachine(t, http.MethodPost, "http://example.org/submit", 5)
	m.header.Set("X-Custom", "value")
	m.header.Set("Host", "vhost.example")
	m.setBody([]byte("payload"))

	req, err := m.wireRequest(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "http://example.org/submit", req.URL.String())
	require.Equal(t, "value", req.Header.Get("X-Custom"))
	require.Equal(t, "vhost.example", req.Host)
	require.Equal(t, int64(7), req.ContentLength)

	// The in-flight headers are copied, not aliased.
	req.Header.Set("X-Custom", "mutated")
	require.Equal(t, "value", m.header.Get("X-Custom"))

	// GetBody replays the same bytes.
	rc, err := req.GetBody()
	require.NoError(t, err)
	replay := make([]byte, 7)
	_, err = rc.Read(replay)
	require.NoError(t, err)
	require.Equal(t, "payload", string(replay))
}

func TestStateMachine_WireRequestNoBody(t *testing.T) {
	m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
	req, err := m.wireRequest(context.Background())
	require.NoError(t, err)
	require.Nil(t, req.Body)
}

func TestStateMachine_WireRequestInvalidHeader(t *testing.T) {
	m := newTestMachine(t, http.MethodGet, "http://example.org/", 5)
	m.header["X-Bad"] = []string{"line\nbreak"}

	_, err := m.wireRequest(context.Background())
	var buildErr *RequestBuildError
	require.ErrorAs(t, err, &buildErr)
}
