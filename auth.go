package followredirect

type basicAuth struct {
	Username string
	Password string
}

// SetBasicAuth sets the basic authentication header on the first request of
// every call. The header is stripped as soon as a redirect leaves the
// original host and port.
// Example. To set the header for username "my_user" and password "my_pass"
//
//    followredirect.New(transport).
//      SetBasicAuth("my_user", "my_pass").
//      Get("https://httpbin.org/basic-auth/my_user/my_pass")
func (c *Client) SetBasicAuth(username string, password string) *Client {
	c.basicAuth = basicAuth{username, password}
	return c
}
