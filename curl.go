package followredirect

import (
	"net/http"

	"moul.io/http2curl"
)

// SetCurlCommand enable the curlcommand mode which displays every hop of the
// redirect chain as a CURL command line.
func (c *Client) SetCurlCommand(enable bool) *Client {
	c.curlCommand = enable
	return c
}

func (c *Client) logCurlCommand(req *http.Request) {
	if c.curlCommand {
		curl, err := http2curl.GetCurlCommand(req)
		c.logger.SetPrefix("[curl] ")
		if err != nil {
			c.logger.Println("Error:", err)
		} else {
			c.logger.Printf("CURL command line: %s", curl)
		}
	}
}
