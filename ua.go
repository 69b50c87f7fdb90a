package followredirect

// UserAgent is used for setting User-Agent into headers
// Example. To set `User-Agent` as `Custom user agent`
//
//    followredirect.New(transport).
//      UserAgent("Custom user agent").
//      Get("https://httpbin.org/get")
func (c *Client) UserAgent(ua string) *Client {
	c.header.Add("User-Agent", ua)
	return c
}
