package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultChatworkBaseURL = "https://api.chatwork.com/v2"
	DatabaseDriverSQLite   = "sqlite3"
	DatabaseDriverPostgres = "postgres"
)

type HTTPConfig struct {
	Addr                   string `koanf:"addr" mapstructure:"addr"`
	ShutdownTimeoutSeconds int    `koanf:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	Driver             string `koanf:"driver" mapstructure:"driver"`
	DSN                string `koanf:"dsn" mapstructure:"dsn"`
	Debug              bool   `koanf:"debug" mapstructure:"debug"`
	PingTimeoutSeconds int    `koanf:"ping_timeout_seconds" mapstructure:"ping_timeout_seconds"`
}

type ChatworkConfig struct {
	BaseURL        string `koanf:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
	// SelfUnread leaves the posted message unread for the bot account.
	SelfUnread bool `koanf:"self_unread" mapstructure:"self_unread"`
}

type TemplatesConfig struct {
	Dir string `koanf:"dir" mapstructure:"dir"`
}

type CacheConfig struct {
	Enabled    bool `koanf:"enabled" mapstructure:"enabled"`
	TTLSeconds int  `koanf:"ttl_seconds" mapstructure:"ttl_seconds"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	LogLevel    string          `koanf:"log_level" mapstructure:"log_level"`
	HTTP        HTTPConfig      `koanf:"http" mapstructure:"http"`
	Database    DatabaseConfig  `koanf:"database" mapstructure:"database"`
	Chatwork    ChatworkConfig  `koanf:"chatwork" mapstructure:"chatwork"`
	Templates   TemplatesConfig `koanf:"templates" mapstructure:"templates"`
	Cache       CacheConfig     `koanf:"cache" mapstructure:"cache"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "hook-notify",
		LogLevel:    "info",
		HTTP: HTTPConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 15,
		},
		Database: DatabaseConfig{
			Driver:             DatabaseDriverSQLite,
			DSN:                "file:hook-notify.db?cache=shared&_foreign_keys=on",
			PingTimeoutSeconds: 5,
		},
		Chatwork: ChatworkConfig{
			BaseURL:        DefaultChatworkBaseURL,
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 60,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	switch strings.TrimSpace(c.Database.Driver) {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("core: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("core: database dsn is required")
	}
	if strings.TrimSpace(c.Chatwork.BaseURL) == "" {
		return fmt.Errorf("core: chatwork base_url is required")
	}
	if c.Chatwork.TimeoutSeconds < 0 || c.Cache.TTLSeconds < 0 || c.HTTP.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("core: timeouts must not be negative")
	}
	return nil
}

func (c HTTPConfig) ShutdownTimeout() time.Duration {
	return seconds(c.ShutdownTimeoutSeconds, 15*time.Second)
}

func (c DatabaseConfig) PingTimeout() time.Duration {
	return seconds(c.PingTimeoutSeconds, 5*time.Second)
}

func (c ChatworkConfig) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds, 30*time.Second)
}

func (c CacheConfig) TTL() time.Duration {
	return seconds(c.TTLSeconds, time.Minute)
}

func seconds(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Second
}
