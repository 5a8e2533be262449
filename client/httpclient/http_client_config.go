package httpclient

import (
	"context"

	"github.com/joy-dx/edunet/dto"
	"golang.org/x/oauth2"
)

type Middleware func(ctx context.Context, req *HTTPRequest) error

type HTTPClientConfig struct {
	TokenProvider dto.AccessTokenProvider
	// AuthScheme Authorization scheme, Bearer when empty
	AuthScheme  string
	Middlewares []Middleware
}

func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		AuthScheme:  "Bearer",
		Middlewares: make([]Middleware, 0),
	}
}

func (c *HTTPClientConfig) WithTokenProvider(provider dto.AccessTokenProvider) *HTTPClientConfig {
	c.TokenProvider = provider
	return c
}
func (c *HTTPClientConfig) WithOAuthSource(tokenSource oauth2.TokenSource) *HTTPClientConfig {
	c.TokenProvider = OAuthTokenProvider{Source: tokenSource}
	return c
}
func (c *HTTPClientConfig) WithAuthScheme(scheme string) *HTTPClientConfig {
	c.AuthScheme = scheme
	return c
}
func (c *HTTPClientConfig) WithMiddleware(m ...Middleware) *HTTPClientConfig {
	c.Middlewares = append(c.Middlewares, m...)
	return c
}
