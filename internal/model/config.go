package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultBaseURL             = "http://localhost:8080/fakeApi"
	DefaultTimeoutSec          = 30
	DefaultNotificationPollSec = 0
	DefaultTokenKey            = "api-token"
)

// APIConfig holds settings for the HTTP collaborator.
type APIConfig struct {
	// BaseURL is the root URL that resource paths are appended to.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single HTTP round trip at the transport level.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// MaxRequestsPerSec throttles outgoing requests. Zero disables it.
	MaxRequestsPerSec float64 `mapstructure:"max_requests_per_sec" yaml:"max_requests_per_sec"`

	// TokenKey names the keyring entry holding an optional bearer token.
	TokenKey string `mapstructure:"token_key" yaml:"token_key"`
}

// Timeout returns TimeoutSec as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// NotificationsConfig controls background notification refresh.
type NotificationsConfig struct {
	// PollIntervalSec is how often to fetch new notifications.
	// Zero means notifications are only fetched on request.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// PollInterval returns PollIntervalSec as a duration.
func (c NotificationsConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API           APIConfig           `mapstructure:"api" yaml:"api"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/postboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "postboard", "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			TimeoutSec: DefaultTimeoutSec,
			TokenKey:   DefaultTokenKey,
		},
		Notifications: NotificationsConfig{
			PollIntervalSec: DefaultNotificationPollSec,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout_sec", DefaultTimeoutSec)
	v.SetDefault("api.max_requests_per_sec", 0)
	v.SetDefault("api.token_key", DefaultTokenKey)
	v.SetDefault("notifications.poll_interval_sec", DefaultNotificationPollSec)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return DefaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.API.MaxRequestsPerSec < 0 {
		cfg.API.MaxRequestsPerSec = 0
	}
	if cfg.Notifications.PollIntervalSec < 0 {
		cfg.Notifications.PollIntervalSec = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("notifications", cfg.Notifications)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
