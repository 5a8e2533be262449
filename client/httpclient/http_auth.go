package httpclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joy-dx/edunet/dto"
	"golang.org/x/oauth2"
)

// normalizeAuthType ensures proper "Bearer", "Basic", or custom capitalization.
func normalizeAuthType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "bearer":
		return "Bearer"
	case "basic":
		return "Basic"
	default:
		if t == "" {
			return "Bearer"
		}
		return t
	}
}

// StaticToken always returns the same token.
type StaticToken string

func (t StaticToken) AccessToken(ctx context.Context) (string, error) {
	return string(t), nil
}

// TokenProviderFunc adapts a function, typically a read of the current
// session preferences, to dto.AccessTokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, error)

func (f TokenProviderFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// OAuthTokenProvider reads the access token from an oauth2.TokenSource on
// every call. Wrap the source with oauth2.ReuseTokenSource to share refreshes.
type OAuthTokenProvider struct {
	Source oauth2.TokenSource
}

func (p OAuthTokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.Source == nil {
		return "", errors.New("nil oauth2 token source")
	}
	tok, err := p.Source.Token()
	if err != nil {
		return "", fmt.Errorf("oauth2 token fetch: %w", err)
	}
	if !tok.Valid() {
		return "", errors.New("oauth2 token expired")
	}
	return tok.AccessToken, nil
}

// -----------------------------------------------------------------------------
// HEADER MANAGEMENT
// -----------------------------------------------------------------------------

// currentToken asks the provider for a token. No provider means no auth.
func (c *HTTPClient) currentToken(ctx context.Context) (string, error) {
	if c.cfg.TokenProvider == nil {
		return "", nil
	}
	tok, err := c.cfg.TokenProvider.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	return tok, nil
}

// attachAuth injects the Authorization header into the per-call request.
func (c *HTTPClient) attachAuth(req *HTTPRequest, token string) {
	if token == "" {
		return
	}
	req.SetHeader("Authorization", fmt.Sprintf("%s %s", normalizeAuthType(c.cfg.AuthScheme), token))
}

var _ dto.AccessTokenProvider = StaticToken("")
var _ dto.AccessTokenProvider = TokenProviderFunc(nil)
var _ dto.AccessTokenProvider = OAuthTokenProvider{}
