package followredirect

import (
	"net/http"

	"gopkg.in/h2non/gock.v1"
)

// Mock will enable gock, http mocking for the underlying transport. Every
// hop of the redirect chain is matched against the registered mocks.
func (c *Client) Mock() *Client {
	httpClient := &http.Client{Transport: c.transport}
	gock.InterceptClient(httpClient)
	c.transport = httpClient.Transport
	c.isMock = true
	return c
}
