package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joy-dx/edunet/config"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/utils"
)

// HTTPClient performs authenticated requests against the platform API.
//
// The access token is read from the configured dto.AccessTokenProvider on
// every call, so a rotated token is used by the very next request. Two
// underlying clients are kept: one bounded by the request timeout for plain
// calls and one without a client timeout for streamed downloads, which are
// bounded only by their context.

const NetClientHTTPRef dto.NetClientType = "net.client.http"

type HTTPClient struct {
	NetClient dto.NetClient `json:"net_client" yaml:"net_client"`
	cfg       *HTTPClientConfig
	netCfg    *config.NetSvcConfig
	client    *http.Client
	stream    *http.Client
}

func NewHTTPClient(ref string, netCfg *config.NetSvcConfig, cfg *HTTPClientConfig) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
		Proxy:               http.ProxyFromEnvironment,
	}
	return &HTTPClient{
		cfg:    cfg,
		netCfg: netCfg,
		NetClient: dto.NetClient{
			Name:        "HTTP Client",
			Ref:         ref,
			ClientType:  NetClientHTTPRef,
			Description: "Perform authenticated HTTP requests and file streams",
		},
		client: &http.Client{
			Timeout:   netCfg.RequestTimeout,
			Transport: transport,
		},
		stream: &http.Client{
			Timeout:   0,
			Transport: transport,
		},
	}
}

func (c *HTTPClient) Ref() string {
	return c.NetClient.Ref
}
func (c *HTTPClient) Type() dto.NetClientType {
	return NetClientHTTPRef
}

// -----------------------------------------------------------------------------
// REQUEST EXECUTION
// -----------------------------------------------------------------------------

// ProcessRequest executes one authenticated, middleware-wrapped call and reads
// the whole body. Any HTTP status is returned as a response; only transport
// and request construction problems are errors.
func (c *HTTPClient) ProcessRequest(ctx context.Context, inCfg *dto.RequestConfig) (dto.Response, error) {
	cfg, castOk := inCfg.ReqConfig.(*HTTPRequestConfig)
	if !castOk {
		return dto.Response{}, errors.New("problem casting to httprequestconfig")
	}

	httpReq, err := c.buildRequest(ctx, cfg)
	if err != nil {
		return dto.Response{}, err
	}

	// client.Do may return a non-nil response together with an error
	httpResp, reqErr := c.client.Do(httpReq)
	if httpResp != nil {
		defer func() {
			io.Copy(io.Discard, httpResp.Body) // drain fully for connection reuse
			httpResp.Body.Close()
		}()
	}
	if reqErr != nil {
		return dto.Response{}, fmt.Errorf("perform request: %w", reqErr)
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return dto.Response{}, fmt.Errorf("read body: %w", err)
	}

	return dto.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header.Clone(),
		Body:       bodyBytes,
	}, nil
}

// OpenStream issues the request and hands back the unread response. The
// caller owns the body. Non-2xx statuses are reported as errors.
func (c *HTTPClient) OpenStream(ctx context.Context, cfg *HTTPRequestConfig) (*http.Response, error) {
	httpReq, err := c.buildRequest(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.stream.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			httpResp.Body.Close()
		}
		return nil, fmt.Errorf("open stream: %w", err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		httpResp.Body.Close()
		return nil, fmt.Errorf("bad HTTP status: %s", httpResp.Status)
	}
	return httpResp, nil
}

func (c *HTTPClient) buildRequest(ctx context.Context, cfg *HTTPRequestConfig) (*http.Request, error) {
	reqAny, err := cfg.NewRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqCfg, ok := reqAny.(*HTTPRequest)
	if !ok {
		return nil, errors.New("problem casting built request to httprequest")
	}

	for _, mw := range c.cfg.Middlewares {
		if err := mw(ctx, reqCfg); err != nil {
			return nil, fmt.Errorf("middleware aborted: %w", err)
		}
	}

	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	c.attachAuth(reqCfg, token)

	if err := reqCfg.FinalizeBody(); err != nil {
		return nil, err
	}

	var body io.Reader = http.NoBody
	if len(reqCfg.BodyBytes) > 0 {
		body = bytes.NewReader(reqCfg.BodyBytes)
	}
	httpReq, err := http.NewRequestWithContext(ctx, reqCfg.Method, reqCfg.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.netCfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.netCfg.UserAgent)
	}
	for k, v := range utils.MapToHeader(c.netCfg.ExtraHeaders) {
		httpReq.Header[k] = v
	}
	for k, v := range utils.MapToHeader(reqCfg.Headers) {
		httpReq.Header[k] = v
	}

	if reqCfg.ContentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", reqCfg.ContentType)
	}
	return httpReq, nil
}
