package edunet

import (
	"context"
	"errors"

	"github.com/joy-dx/edunet/client/httpclient"
	"github.com/joy-dx/edunet/dto"
)

func (s *NetSvc) State() *dto.NetState {
	return &dto.NetState{
		BaseURL:                  s.cfg.BaseURL,
		ExtraHeaders:             s.cfg.ExtraHeaders,
		RequestTimeout:           s.cfg.RequestTimeout,
		UserAgent:                s.cfg.UserAgent,
		DataDirectory:            s.cfg.DataDirectory,
		DownloadCallbackInterval: s.cfg.DownloadCallbackInterval,
		TransfersStatus:          s.transferState.GetAll(),
	}
}

// Hydrate validates the configuration and registers the default HTTP client
func (s *NetSvc) Hydrate(ctx context.Context) error {
	if s.cfg == nil {
		return errors.New("no net config")
	}
	if s.relay == nil {
		return errors.New("no relay implementation")
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	defaultClientCfg := httpclient.DefaultHTTPClientConfig()
	defaultClientCfg.WithTokenProvider(s.cfg.TokenProvider()).
		WithMiddleware(httpclient.RelayLoggingMiddleware(s.relay))
	defaultClient := httpclient.NewHTTPClient(dto.NET_DEFAULT_CLIENT_REF, s.cfg, &defaultClientCfg)
	s.RegisterClient(dto.NET_DEFAULT_CLIENT_REF, defaultClient)

	return nil
}
