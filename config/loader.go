package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvBaseURL          = "EDUNET_BASE_URL"
	EnvGetFileURL       = "EDUNET_GET_FILE_URL"
	EnvFilesURL         = "EDUNET_FILES_URL"
	EnvRequestTimeout   = "EDUNET_REQUEST_TIMEOUT"
	EnvUserAgent        = "EDUNET_USER_AGENT"
	EnvDataDirectory    = "EDUNET_DATA_DIR"
	EnvExtraHeaders     = "EDUNET_EXTRA_HEADERS"
	EnvCallbackInterval = "EDUNET_DOWNLOAD_CALLBACK_INTERVAL"
	// EnvAccessToken read on every request by EnvTokenProvider
	EnvAccessToken = "EDUNET_ACCESS_TOKEN"
)

// LoadEnvFiles loads the given dotenv files into the process environment.
// Missing files are skipped; later files override earlier ones.
func LoadEnvFiles(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any EDUNET_* variables present in the environment
func ApplyEnv(cfg *NetSvcConfig) error {
	if v, ok := os.LookupEnv(EnvBaseURL); ok {
		cfg.WithBaseURL(v)
	}
	if v, ok := os.LookupEnv(EnvGetFileURL); ok {
		cfg.WithGetFileURL(v)
	}
	if v, ok := os.LookupEnv(EnvFilesURL); ok {
		cfg.WithFilesURL(v)
	}
	if v, ok := os.LookupEnv(EnvUserAgent); ok {
		cfg.WithUserAgent(v)
	}
	if v, ok := os.LookupEnv(EnvDataDirectory); ok {
		cfg.WithDataDirectory(v)
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvRequestTimeout, err)
		}
		cfg.WithRequestTimeout(d)
	}
	if v, ok := os.LookupEnv(EnvCallbackInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvCallbackInterval, err)
		}
		cfg.WithDownloadCallbackInterval(d)
	}
	if v, ok := os.LookupEnv(EnvExtraHeaders); ok {
		if cfg.ExtraHeaders == nil {
			cfg.ExtraHeaders = map[string]string{}
		}
		if err := cfg.ExtraHeaders.Set(v); err != nil {
			return fmt.Errorf("parse %s: %w", EnvExtraHeaders, err)
		}
	}
	return nil
}

// EnvTokenProvider reads the bearer token from EDUNET_ACCESS_TOKEN each time it
// is asked, so a token refreshed by another process is picked up
type EnvTokenProvider struct{}

func (EnvTokenProvider) AccessToken(ctx context.Context) (string, error) {
	token, ok := os.LookupEnv(EnvAccessToken)
	if !ok {
		return "", fmt.Errorf("%s not set", EnvAccessToken)
	}
	return token, nil
}

// Load builds a validated config from defaults, dotenv files and the environment
func Load(files ...string) (NetSvcConfig, error) {
	cfg := DefaultNetSvcConfig()
	if err := LoadEnvFiles(files...); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
