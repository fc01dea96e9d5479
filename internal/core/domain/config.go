package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	API      APIConfig     `mapstructure:"api"`
	Timezone string        `mapstructure:"timezone"`
	Locale   string        `mapstructure:"locale"`
	Cache    CacheConfig   `mapstructure:"cache"`
	Session  SessionConfig `mapstructure:"session"`
	Fetch    FetchConfig   `mapstructure:"fetch"`
	Log      LogConfig     `mapstructure:"log"`
}

// APIConfig configures the remote client.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	Token      string        `mapstructure:"token"`
}

// CacheConfig bounds the summary cache.
type CacheConfig struct {
	DailyCapacity  int `mapstructure:"daily_capacity"`
	WeeklyCapacity int `mapstructure:"weekly_capacity"`
}

// SessionConfig locates the signed-in user.
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// FetchConfig tunes the fetch coordinator.
type FetchConfig struct {
	PrefetchConcurrency int `mapstructure:"prefetch_concurrency"`
}

// LogConfig selects the log format and whether progress lines are printed.
type LogConfig struct {
	JSON     bool `mapstructure:"json"`
	Progress bool `mapstructure:"progress"`
}
