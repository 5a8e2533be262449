package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNetSvcConfig(t *testing.T) {
	cfg := DefaultNetSvcConfig()

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultBaseURL+DefaultGetFilePath, cfg.FileEndpoint())
	assert.Equal(t, DefaultBaseURL+DefaultFilesPath, cfg.FilesEndpoint())
	assert.NotNil(t, cfg.Relay())
	require.NoError(t, cfg.Validate())
}

func TestNetSvcConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *NetSvcConfig)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *NetSvcConfig) {}},
		{name: "zero timeout", mutate: func(c *NetSvcConfig) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "relative base url", mutate: func(c *NetSvcConfig) { c.BaseURL = "/api" }, wantErr: true},
		{name: "relative file url", mutate: func(c *NetSvcConfig) { c.GetFileURL = "get" }, wantErr: true},
		{name: "explicit file urls", mutate: func(c *NetSvcConfig) {
			c.GetFileURL = "https://files.example.com/get"
			c.FilesURL = "https://files.example.com/list"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultNetSvcConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_FromDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"EDUNET_BASE_URL=https://lms.example.com/\n"+
			"EDUNET_REQUEST_TIMEOUT=5s\n"+
			"EDUNET_DATA_DIR="+dir+"\n"+
			"EDUNET_EXTRA_HEADERS=X-App=edu,X-Lang=en\n",
	), 0o644))

	for _, key := range []string{EnvBaseURL, EnvRequestTimeout, EnvDataDirectory, EnvExtraHeaders} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://lms.example.com", cfg.BaseURL)
	assert.Equal(t, "https://lms.example.com"+DefaultGetFilePath, cfg.FileEndpoint())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, dir, cfg.DataDirectory)
	assert.Equal(t, "edu", cfg.ExtraHeaders["X-App"])
	assert.Equal(t, "en", cfg.ExtraHeaders["X-Lang"])
}

func TestApplyEnv_BadDuration(t *testing.T) {
	t.Setenv(EnvRequestTimeout, "soon")

	cfg := DefaultNetSvcConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRequestTimeout)
}

func TestEnvTokenProvider_ReadsEveryCall(t *testing.T) {
	t.Setenv(EnvAccessToken, "first")
	p := EnvTokenProvider{}

	tok, err := p.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", tok)

	t.Setenv(EnvAccessToken, "second")
	tok, err = p.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	require.NoError(t, os.Unsetenv(EnvAccessToken))
	_, err = p.AccessToken(context.Background())
	assert.Error(t, err)
}
