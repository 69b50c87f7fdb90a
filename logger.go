package followredirect

type Logger interface {
	SetPrefix(string)
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// SetLogger set the logger which is the default logger to the Client instance.
func (c *Client) SetLogger(logger Logger) *Client {
	c.logger = logger
	return c
}
