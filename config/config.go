package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

const (
	DefaultBaseURL      = "https://educats.by"
	DefaultGetFilePath  = "/api/Upload/GetFile"
	DefaultFilesPath    = "/Services/Files/FilesService.svc/GetFiles"
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "edunet/1.0"
	DefaultCallbackTick = 250 * time.Millisecond
)

// NetSvcConfig settings shared by the request controller and the download manager
type NetSvcConfig struct {
	BaseURL string `json:"net_base_url" yaml:"net_base_url"`
	// GetFileURL download endpoint, derived from BaseURL when empty
	GetFileURL string `json:"net_get_file_url" yaml:"net_get_file_url"`
	// FilesURL file listing endpoint, derived from BaseURL when empty
	FilesURL       string           `json:"net_files_url" yaml:"net_files_url"`
	ExtraHeaders   dto.ExtraHeaders `json:"net_extra_headers" yaml:"net_extra_headers"`
	RequestTimeout time.Duration    `json:"net_request_timeout" yaml:"net_request_timeout"`
	UserAgent      string           `json:"net_user_agent" yaml:"net_user_agent"`
	// DataDirectory application data directory downloads are stored in
	DataDirectory            string        `json:"net_data_directory" yaml:"net_data_directory"`
	DownloadCallbackInterval time.Duration `json:"net_download_callback_interval" yaml:"net_download_callback_interval"`

	// Localized strings shown by the download manager
	DownloadingText      string `json:"net_downloading_text" yaml:"net_downloading_text"`
	CancelText           string `json:"net_cancel_text" yaml:"net_cancel_text"`
	DownloadingErrorText string `json:"net_downloading_error_text" yaml:"net_downloading_error_text"`

	relay         relayDTO.RelayInterface
	tokenProvider dto.AccessTokenProvider
}

func DefaultNetSvcConfig() NetSvcConfig {
	return NetSvcConfig{
		BaseURL:                  DefaultBaseURL,
		ExtraHeaders:             dto.ExtraHeaders{},
		RequestTimeout:           DefaultTimeout,
		UserAgent:                DefaultUserAgent,
		DownloadCallbackInterval: DefaultCallbackTick,
		DownloadingText:          "Downloading...",
		CancelText:               "Cancel",
		DownloadingErrorText:     "An error occurred while downloading the file.",
	}
}

// Relay returns the configured relay, falling back to slog.Default output
func (c *NetSvcConfig) Relay() relayDTO.RelayInterface {
	if c.relay == nil {
		c.relay = relays.NewSlogRelay(nil)
	}
	return c.relay
}

func (c *NetSvcConfig) WithRelay(relay relayDTO.RelayInterface) *NetSvcConfig {
	c.relay = relay
	return c
}

// TokenProvider source of the bearer token attached to every request, nil for anonymous access
func (c *NetSvcConfig) TokenProvider() dto.AccessTokenProvider {
	return c.tokenProvider
}

func (c *NetSvcConfig) WithTokenProvider(provider dto.AccessTokenProvider) *NetSvcConfig {
	c.tokenProvider = provider
	return c
}

func (c *NetSvcConfig) WithBaseURL(baseURL string) *NetSvcConfig {
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *NetSvcConfig) WithGetFileURL(u string) *NetSvcConfig {
	c.GetFileURL = u
	return c
}

func (c *NetSvcConfig) WithFilesURL(u string) *NetSvcConfig {
	c.FilesURL = u
	return c
}

func (c *NetSvcConfig) WithRequestTimeout(d time.Duration) *NetSvcConfig {
	c.RequestTimeout = d
	return c
}

func (c *NetSvcConfig) WithUserAgent(ua string) *NetSvcConfig {
	c.UserAgent = ua
	return c
}

func (c *NetSvcConfig) WithExtraHeaders(headers dto.ExtraHeaders) *NetSvcConfig {
	c.ExtraHeaders = headers
	return c
}

func (c *NetSvcConfig) WithDataDirectory(dir string) *NetSvcConfig {
	c.DataDirectory = dir
	return c
}

func (c *NetSvcConfig) WithDownloadCallbackInterval(d time.Duration) *NetSvcConfig {
	c.DownloadCallbackInterval = d
	return c
}

// FileEndpoint URL files are downloaded from
func (c *NetSvcConfig) FileEndpoint() string {
	if c.GetFileURL != "" {
		return c.GetFileURL
	}
	return strings.TrimRight(c.BaseURL, "/") + DefaultGetFilePath
}

// FilesEndpoint URL subject file listings are fetched from
func (c *NetSvcConfig) FilesEndpoint() string {
	if c.FilesURL != "" {
		return c.FilesURL
	}
	return strings.TrimRight(c.BaseURL, "/") + DefaultFilesPath
}

func (c *NetSvcConfig) Validate() error {
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	for name, raw := range map[string]string{
		"base url":     c.BaseURL,
		"get file url": c.FileEndpoint(),
		"files url":    c.FilesEndpoint(),
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("%s must be absolute: %q", name, raw)
		}
	}
	return nil
}
