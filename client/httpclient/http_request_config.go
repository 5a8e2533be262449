package httpclient

import (
	"context"
	"net/http"

	"github.com/joy-dx/edunet/dto"
)

// HTTPRequestConfig is immutable input (safe to reuse).
type HTTPRequestConfig struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
	// PostBody raw text payload, takes precedence over Body
	PostBody *dto.PostBody         `json:"post_body,omitempty" yaml:"post_body,omitempty"`
	Body     map[string]interface{} `json:"body" yaml:"body"`
	// BodyType application/json, application/x-www-form-urlencoded
	BodyType string            `json:"body_type" yaml:"body_type"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
}

func DefaultHTTPRequestConfig() HTTPRequestConfig {
	return HTTPRequestConfig{
		Method:   http.MethodGet,
		BodyType: "application/json",
		Headers:  make(map[string]string),
	}
}

func (c *HTTPRequestConfig) Ref() dto.NetClientType {
	return NetClientHTTPRef
}

func (c *HTTPRequestConfig) WithMethod(method string) *HTTPRequestConfig {
	c.Method = method
	return c
}
func (c *HTTPRequestConfig) WithBody(body map[string]interface{}) *HTTPRequestConfig {
	c.Body = body
	return c
}
func (c *HTTPRequestConfig) WithBodyType(bodyType string) *HTTPRequestConfig {
	c.BodyType = bodyType
	return c
}

// WithPostBody sets the raw payload. Empty content leaves the body unset.
func (c *HTTPRequestConfig) WithPostBody(body dto.PostBody) *HTTPRequestConfig {
	if body.Content == "" {
		c.PostBody = nil
		return c
	}
	c.PostBody = &body
	return c
}
func (c *HTTPRequestConfig) WithHeaders(headers map[string]string) *HTTPRequestConfig {
	c.Headers = headers
	return c
}
func (c *HTTPRequestConfig) WithURL(url string) *HTTPRequestConfig {
	c.URL = url
	return c
}

// NewRequest creates a per-call mutable request object.
// Header and body maps are copied so middleware cannot mutate the config.
func (c *HTTPRequestConfig) NewRequest(ctx context.Context) (any, error) {
	r := &HTTPRequest{
		Method:   c.Method,
		URL:      c.URL,
		BodyType: c.BodyType,
		Headers:  make(map[string]string, len(c.Headers)),
	}
	for k, v := range c.Headers {
		r.Headers[k] = v
	}
	if c.Body != nil {
		r.Body = make(map[string]any, len(c.Body))
		for k, v := range c.Body {
			r.Body[k] = v
		}
	}
	if c.PostBody != nil {
		pb := *c.PostBody
		r.PostBody = &pb
	}
	return r, nil
}

// HTTPRequest is per-call mutable state.
type HTTPRequest struct {
	Method   string
	URL      string
	PostBody *dto.PostBody
	Body     map[string]any
	BodyType string
	Headers  map[string]string
	// Finalized wire body
	BodyBytes   []byte
	ContentType string
}

func (r *HTTPRequest) ClientType() dto.NetClientType { return NetClientHTTPRef }

func (r *HTTPRequest) SetHeader(k, v string) {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	r.Headers[k] = v
}

func (r *HTTPRequest) Header(k string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[k]
}
