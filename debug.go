package followredirect

import (
	"net/http"
	"net/http/httputil"
)

// SetDebug enable the debug mode which logs every hop's request/response
// detail. It is also enabled when the environment variable
// FOLLOWREDIRECT_DEBUG is set to "1".
func (c *Client) SetDebug(enable bool) *Client {
	c.debug = enable
	return c
}

func (c *Client) debuggingRequest(req *http.Request) {
	if c.debug {
		dump, err := httputil.DumpRequest(req, true)
		c.logger.SetPrefix("[http] ")
		if err != nil {
			c.logger.Println("Error:", err)
		} else {
			c.logger.Printf("HTTP Request: %s", BytesToString(dump))
		}
	}
}

func (c *Client) debuggingResponse(resp *http.Response) {
	if c.debug {
		dump, err := httputil.DumpResponse(resp, true)
		if nil != err {
			c.logger.Println("Error:", err)
		} else {
			c.logger.Printf("HTTP Response: %s", BytesToString(dump))
		}
	}
}
