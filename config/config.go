// Package config loads hub settings from config.yaml, a .env file and
// SYNCNOTES_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

const envPrefix = "SYNCNOTES"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Hub      HubConfig      `mapstructure:"hub"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	HubPath         string        `mapstructure:"hub_path"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	TLS     bool   `mapstructure:"tls"`
}

type CacheConfig struct {
	NameTTL time.Duration `mapstructure:"name_ttl"`
}

type HubConfig struct {
	LegacyElementDeleteBroadcast bool    `mapstructure:"legacy_element_delete_broadcast"`
	MessagesPerSecond            float64 `mapstructure:"messages_per_second"`
	Burst                        int     `mapstructure:"burst"`
	SendBuffer                   int     `mapstructure:"send_buffer"`
	MaxMessageBytes              int64   `mapstructure:"max_message_bytes"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.hub_path", "/notehub")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "SyncNotes")
	v.SetDefault("auth.audience", "SyncNotes")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "syncnotes.db")
	v.SetDefault("database.max_open_conns", 1)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.tls", false)
	v.SetDefault("cache.name_ttl", "10m")

	v.SetDefault("hub.legacy_element_delete_broadcast", false)
	v.SetDefault("hub.messages_per_second", 20)
	v.SetDefault("hub.burst", 30)
	v.SetDefault("hub.send_buffer", 256)
	v.SetDefault("hub.max_message_bytes", 1<<20)

	v.SetDefault("log.level", "info")
}

// Load reads configuration from the working directory and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Debugf("config: no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if !strings.HasPrefix(c.Server.HubPath, "/") {
		return fmt.Errorf("server.hub_path must start with '/': %q", c.Server.HubPath)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	if c.Hub.MessagesPerSecond <= 0 || c.Hub.Burst <= 0 {
		return errors.New("hub rate limit must be positive")
	}
	if c.Hub.SendBuffer <= 0 {
		return errors.New("hub.send_buffer must be positive")
	}
	return nil
}

// LogLevel maps log.level onto gommon levels, defaulting to INFO.
func (c *Config) LogLevel() log.Lvl {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
