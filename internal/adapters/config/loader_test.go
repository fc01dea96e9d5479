package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nourish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryCount)
	assert.Empty(t, cfg.API.Token)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, domain.LocaleEnglish, cfg.Locale)
	assert.Equal(t, 366, cfg.Cache.DailyCapacity)
	assert.Equal(t, 104, cfg.Cache.WeeklyCapacity)
	assert.True(t, strings.HasSuffix(cfg.Session.Path, filepath.Join("nourish", "session.json")))
	assert.Equal(t, 4, cfg.Fetch.PrefetchConcurrency)
	assert.False(t, cfg.Log.JSON)
	assert.False(t, cfg.Log.Progress)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://nutrition.example.com/api/
  timeout: 5s
  retry_count: 0
  token: secret
timezone: Asia/Ho_Chi_Minh
locale: vi
cache:
  daily_capacity: 31
fetch:
  prefetch_concurrency: 2
log:
  json: true
  progress: true
`)

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://nutrition.example.com/api/", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RetryCount)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Timezone)
	assert.Equal(t, domain.LocaleVietnamese, cfg.Locale)
	assert.Equal(t, 31, cfg.Cache.DailyCapacity)
	assert.Equal(t, 104, cfg.Cache.WeeklyCapacity, "unset keys keep their default")
	assert.Equal(t, 2, cfg.Fetch.PrefetchConcurrency)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Log.Progress)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "locale: vi\napi:\n  token: from-file\n")
	t.Setenv("NOURISH_API_TOKEN", "from-env")
	t.Setenv("NOURISH_LOCALE", "en")

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, domain.LocaleEnglish, cfg.Locale)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeConfig(t, "timezone: UTC\n")
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "api: [unclosed"},
		{"relative base url", "api:\n  base_url: /api\n"},
		{"non-positive timeout", "api:\n  timeout: 0s\n"},
		{"negative retries", "api:\n  retry_count: -1\n"},
		{"unknown locale", "locale: fr\n"},
		{"negative capacity", "cache:\n  weekly_capacity: -5\n"},
		{"zero concurrency", "fetch:\n  prefetch_concurrency: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewLoader().Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
		})
	}
}
