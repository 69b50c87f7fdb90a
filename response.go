package followredirect

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/wklken/followredirect/internal/json"
)

// MIMEJSON is the content type expected by GetStruct.
const MIMEJSON = "application/json"

// ReadBody reads the whole body of the final response and resets it, so the
// body can be read again by the caller.
func ReadBody(resp *http.Response) ([]byte, error) {
	body, err := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = ioutil.NopCloser(bytes.NewBuffer(body))
	return body, err
}

// GetStruct sends a GET request, follows redirects, and decodes the final
// JSON response body into v. The raw body is returned alongside the
// response.
func (c *Client) GetStruct(targetUrl string, v interface{}) (*http.Response, []byte, error) {
	resp, err := c.Get(targetUrl)
	if err != nil {
		return nil, nil, err
	}

	body, err := ReadBody(resp)
	if err != nil {
		return resp, nil, err
	}

	if err := json.Unmarshal(body, v); err != nil {
		respContentType := filterFlags(resp.Header.Get("Content-Type"))
		if respContentType != MIMEJSON {
			return resp, body, fmt.Errorf(
				"response content-type is %s not application/json, so can't be json decoded: %w",
				respContentType,
				err,
			)
		}
		return resp, body, fmt.Errorf("response body json decode fail: %w", err)
	}
	return resp, body, nil
}
