package followredirect

import (
	"bytes"
	"reflect"

	"github.com/spf13/cast"

	"github.com/wklken/followredirect/internal/json"
)

// Set is used for setting default header fields applied to the first request
// of every call, this will overwrite the existed values of Header through
// AppendHeader(). A header the request already carries wins over a default.
// Example. To set `Accept` as `application/json`
//
//    followredirect.New(transport).
//      Set("Accept", "application/json").
//      Get("https://httpbin.org/get")
func (c *Client) Set(param string, value string) *Client {
	c.header.Set(param, value)
	return c
}

// SetHeaders is used for setting all your default headers with the use of a
// map or a struct. It uses AppendHeader() method so it allows for multiple
// values of the same header.
// Example. To set the following struct as headers, simply do
//
//    headers := apiHeaders{Accept: "application/json", Content-Type: "text/html", X-Frame-Options: "deny"}
//    followredirect.New(transport).
//      SetHeaders(headers).
//      Get("apiEndPoint")
func (c *Client) SetHeaders(headers interface{}) *Client {
	switch v := reflect.ValueOf(headers); v.Kind() {
	case reflect.Struct:
		c.setHeadersStruct(v.Interface())
	case reflect.Map:
		c.setHeadersMap(v.Interface())
	default:
		return c
	}
	return c
}

func (c *Client) setHeadersMap(content interface{}) *Client {
	return c.setHeadersStruct(content)
}

func (c *Client) setHeadersStruct(content interface{}) *Client {
	if marshalContent, err := json.Marshal(content); err != nil {
		c.errs = append(c.errs, err)
	} else {
		var val map[string]interface{}
		d := json.NewDecoder(bytes.NewBuffer(marshalContent))
		d.UseNumber()
		if err := d.Decode(&val); err != nil {
			c.errs = append(c.errs, err)
		} else {
			for k, v := range val {
				strValue, err := cast.ToStringE(v)
				if err != nil {
					continue
				}

				c.AppendHeader(k, strValue)
			}
		}
	}
	return c
}

// AppendHeader is used for setting default headers with multiple values,
// Example. To set `Accept` as `application/json, text/plain`
//
//    followredirect.New(transport).
//      AppendHeader("Accept", "application/json").
//      AppendHeader("Accept", "text/plain").
//      Get("https://httpbin.org/get")
func (c *Client) AppendHeader(param string, value string) *Client {
	c.header.Add(param, value)
	return c
}
