// Package config resolves the runtime configuration from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "nourish.yaml"
	// EnvPrefix prefixes every environment override, e.g. NOURISH_API_TOKEN.
	EnvPrefix = "NOURISH"
	// EnvConfigPath names the environment variable holding the config file path.
	EnvConfigPath = EnvPrefix + "_CONFIG"
)

// Loader implements ports.ConfigLoader on top of viper.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a Loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// Load resolves the configuration. An empty path falls back to $NOURISH_CONFIG
// and then to DefaultFile; only the implicit default may be missing.
func (l *Loader) Load(path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		if p, ok := l.lookupEnv(EnvConfigPath); ok && p != "" {
			path, explicit = p, true
		} else {
			path = DefaultFile
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
		if !missing || explicit {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "path", path)
		}
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "path", path)
	}

	if err := validate(&cfg); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/api/")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_count", 2)
	v.SetDefault("api.token", "")
	v.SetDefault("timezone", "Local")
	v.SetDefault("locale", domain.LocaleEnglish)
	v.SetDefault("cache.daily_capacity", 366)
	v.SetDefault("cache.weekly_capacity", 104)
	v.SetDefault("session.path", defaultSessionPath())
	v.SetDefault("fetch.prefetch_concurrency", 4)
	v.SetDefault("log.json", false)
	v.SetDefault("log.progress", false)
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "nourish", "session.json")
}

func validate(cfg *domain.Config) error {
	invalid := func(key string, value any) error {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid "+key), key, value)
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("api.base_url", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return invalid("api.timeout", cfg.API.Timeout.String())
	}
	if cfg.API.RetryCount < 0 {
		return invalid("api.retry_count", cfg.API.RetryCount)
	}
	switch cfg.Locale {
	case domain.LocaleEnglish, domain.LocaleVietnamese:
	default:
		return invalid("locale", cfg.Locale)
	}
	if cfg.Cache.DailyCapacity < 0 {
		return invalid("cache.daily_capacity", cfg.Cache.DailyCapacity)
	}
	if cfg.Cache.WeeklyCapacity < 0 {
		return invalid("cache.weekly_capacity", cfg.Cache.WeeklyCapacity)
	}
	if cfg.Session.Path == "" {
		return invalid("session.path", cfg.Session.Path)
	}
	if cfg.Fetch.PrefetchConcurrency < 1 {
		return invalid("fetch.prefetch_concurrency", cfg.Fetch.PrefetchConcurrency)
	}
	return nil
}
