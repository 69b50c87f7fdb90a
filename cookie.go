package followredirect

import "net/http"

// AddCookie adds a cookie to the first request of every call. There is no
// cookie jar: Set-Cookie headers in responses are ignored, and the Cookie
// header is stripped when a redirect leaves the original host and port.
func (c *Client) AddCookie(cookie *http.Cookie) *Client {
	c.cookies = append(c.cookies, cookie)
	return c
}

// AddCookies is a convenient method to add multiple cookies
func (c *Client) AddCookies(cookies []*http.Cookie) *Client {
	c.cookies = append(c.cookies, cookies...)
	return c
}
