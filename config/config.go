package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	USDA     USDAConfig
	Cache    CacheConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// USDAConfig holds USDA API configuration.
type USDAConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// CacheConfig holds meal-cache configuration.
type CacheConfig struct {
	Driver string        `mapstructure:"driver"` // "database" or "memory"
	TTL    time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// JWTConfig holds access-token configuration.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealwise/")

	// Environment variable settings: MEALWISE_JWT_SECRET -> jwt.secret
	v.SetEnvPrefix("MEALWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// USDA defaults. The API key defaults to empty; a missing key surfaces as
	// a configuration error on the first lookup, not at start-up. Registering
	// it here lets AutomaticEnv pick it up during Unmarshal.
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.page_size", 10)

	// Cache defaults
	v.SetDefault("cache.driver", "database")
	v.SetDefault("cache.ttl", "24h")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "mealwise.db")

	// JWT defaults. The secret itself has no usable default; it is registered
	// empty so the env var is seen, and validate rejects the empty value.
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "mealwise")
	v.SetDefault("jwt.ttl", "60m")

	// Database DSN override, normally unset
	v.SetDefault("database.dsn", "")

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required (set MEALWISE_JWT_SECRET)")
	}

	if config.Cache.Driver != "database" && config.Cache.Driver != "memory" {
		return fmt.Errorf("cache driver must be 'database' or 'memory', got: %s", config.Cache.Driver)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	return nil
}
