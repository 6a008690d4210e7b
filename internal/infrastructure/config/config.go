package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	FX      FXConfig
	Log     LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig holds marketplace API settings
type APIConfig struct {
	// BaseURL is the REST API root, including the /api prefix
	BaseURL string
	// ServerBase is the origin serving static uploads (no /api prefix)
	ServerBase string
	Timeout    time.Duration
}

// StorageConfig selects the local state backend
type StorageConfig struct {
	Backend string // file, memory, sqlite, redis
	Dir     string // file backend state directory
	Path    string // sqlite backend database file
	Redis   RedisConfig
}

// RedisConfig holds Redis connection settings for the redis backend
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// FXConfig holds currency conversion settings
type FXConfig struct {
	CacheTTL     time.Duration
	FallbackRate float64 // NGN per USD when no rate is reachable or cached
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with FOODCHEQ_ prefix (e.g., FOODCHEQ_API_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.foodcheq")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("FOODCHEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL:    v.GetString("api.base_url"),
			ServerBase: v.GetString("api.server_base"),
			Timeout:    v.GetDuration("api.timeout"),
		},
		Storage: StorageConfig{
			Backend: v.GetString("storage.backend"),
			Dir:     v.GetString("storage.dir"),
			Path:    v.GetString("storage.path"),
			Redis: RedisConfig{
				Host:      v.GetString("storage.redis.host"),
				Port:      v.GetInt("storage.redis.port"),
				Password:  v.GetString("storage.redis.password"),
				DB:        v.GetInt("storage.redis.db"),
				KeyPrefix: v.GetString("storage.redis.key_prefix"),
			},
		},
		FX: FXConfig{
			CacheTTL:     v.GetDuration("fx.cache_ttl"),
			FallbackRate: v.GetFloat64("fx.fallback_rate"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	return cfg, nil
}

// setDefaults mirrors the constants the browser build shipped with
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "foodcheq-storefront")
	v.SetDefault("app.env", "development")
	v.SetDefault("api.base_url", "http://localhost:4000/api")
	v.SetDefault("api.server_base", "http://localhost:4000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", ".foodcheq")
	v.SetDefault("storage.path", "foodcheq.db")
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("fx.cache_ttl", 30*time.Minute)
	v.SetDefault("fx.fallback_rate", 1600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}
