package edunet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joy-dx/edunet/client/httpclient"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/relays"
	"github.com/joy-dx/edunet/utils"
)

// Get authenticated GET against url
func (s *NetSvc) Get(ctx context.Context, url string) dto.Response {
	httpRequestConfig := httpclient.DefaultHTTPRequestConfig()
	httpRequestConfig.WithURL(url)
	return s.SendRequest(ctx, &httpRequestConfig)
}

// Post authenticated POST of a text payload against url
func (s *NetSvc) Post(ctx context.Context, url string, body dto.PostBody) dto.Response {
	httpRequestConfig := httpclient.DefaultHTTPRequestConfig()
	httpRequestConfig.WithURL(url).
		WithMethod(http.MethodPost).
		WithPostBody(body)
	return s.SendRequest(ctx, &httpRequestConfig)
}

// SendRequest performs a single authenticated call through the default
// client. It never returns an error: transport problems are folded into the
// response as 408 for timeouts and 400 for everything else.
func (s *NetSvc) SendRequest(ctx context.Context, req *httpclient.HTTPRequestConfig) dto.Response {
	if req == nil {
		return s.finishRequest("", "", time.Now(), dto.Response{StatusCode: http.StatusBadRequest, Failure: dto.FAILURE_TRANSPORT}, dto.ErrNilReqConfig)
	}

	started := time.Now()
	switch req.Method {
	case http.MethodGet, http.MethodPost:
	default:
		resp := dto.Response{Failure: dto.FAILURE_UNSUPPORTED_METHOD}
		return s.finishRequest(req.Method, req.URL, started, resp, fmt.Errorf("%w: %q", dto.ErrUnsupportedMethod, req.Method))
	}

	cfg := dto.DefaultRequestConfig()
	cfg.WithReqConfig(req).
		WithTimeout(s.cfg.RequestTimeout).
		WithTaskName(req.Method + " " + req.URL)

	resp, err := s.RequestOnce(ctx, &cfg)
	if err != nil {
		resp = failureResponse(err)
	}
	return s.finishRequest(req.Method, req.URL, started, resp, err)
}

func failureResponse(err error) dto.Response {
	if utils.IsTimeoutErr(err) {
		return dto.Response{StatusCode: http.StatusRequestTimeout, Failure: dto.FAILURE_TIMEOUT}
	}
	return dto.Response{StatusCode: http.StatusBadRequest, Failure: dto.FAILURE_TRANSPORT}
}

func (s *NetSvc) finishRequest(method, url string, started time.Time, resp dto.Response, err error) dto.Response {
	event := relays.RlyNetRequest{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Failure:    resp.Failure,
		Duration:   time.Since(started),
		Msg:        "request finished",
	}
	if err != nil {
		event.Msg = err.Error()
		s.relay.Warn(event)
	} else {
		s.relay.Debug(event)
	}
	s.metrics.observeRequest(method, resp)
	return resp
}

// RequestOnce routes cfg to the named client and optionally decodes a JSON
// body into cfg.ResponseObject. Unlike SendRequest it reports errors.
func (s *NetSvc) RequestOnce(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
	if cfg == nil {
		return dto.Response{}, errors.New("nil RequestConfig provided")
	}

	if cfg.ClientRef == "" {
		return dto.Response{}, errors.New("nil ClientRef provided")
	}

	if cfg.ReqConfig == nil {
		return dto.Response{}, dto.ErrNilReqConfig
	}

	if cfg.TaskName == "" {
		cfg.TaskName = "http_request"
	}

	netClient, err := s.client(cfg.ClientRef)
	if err != nil {
		return dto.Response{}, err
	}

	// Sanity check that the req config matches the client type to avoid later casting confusion
	if netClient.Type() != cfg.ReqConfig.Ref() {
		return dto.Response{}, fmt.Errorf(
			"client type mismatch: client=%s(%s) req=%s",
			cfg.ClientRef,
			netClient.Type(),
			cfg.ReqConfig.Ref(),
		)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	response, err := netClient.ProcessRequest(ctx, cfg)
	if err != nil {
		return dto.Response{}, fmt.Errorf("%s: %w", cfg.TaskName, err)
	}

	if cfg.ResponseObject != nil && len(response.Body) > 0 {
		if unmarshalErr := json.Unmarshal(response.Body, cfg.ResponseObject); unmarshalErr != nil {
			return response, fmt.Errorf("unmarshal response: %w", unmarshalErr)
		}
	}

	return response, nil
}
