package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Display DisplayConfig
	Export  ExportConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig holds the remote store connection settings.
type StoreConfig struct {
	URL             string // postgres:// endpoint of the store
	Key             string // access key, sent as the connection password
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	MaxConnIdleTime int // seconds
	HealthCheck     int // seconds between pool health checks
	Migrate         bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for the JSON API.
// An empty APIKey leaves the API open.
type AuthConfig struct {
	APIKey string
}

// DisplayConfig holds dashboard presentation settings.
type DisplayConfig struct {
	Title          string
	CurrencySymbol string
}

// ExportConfig holds snapshot export configuration.
type ExportConfig struct {
	Dir       string // empty disables snapshots
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Prefix  string // key prefix within bucket (e.g., "snapshots/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			URL:             getEnv("STORE_URL", ""),
			Key:             getEnv("STORE_KEY", ""),
			MaxConnections:  getEnvAsInt("STORE_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("STORE_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("STORE_MAX_CONN_LIFETIME", 300),
			MaxConnIdleTime: getEnvAsInt("STORE_MAX_CONN_IDLE_TIME", 1800),
			HealthCheck:     getEnvAsInt("STORE_HEALTH_CHECK_PERIOD", 60),
			Migrate:         getEnvAsBool("STORE_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Display: DisplayConfig{
			Title:          getEnv("DASHBOARD_TITLE", "Inventory Management"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "zł"),
		},
		Export: ExportConfig{
			Dir:       getEnvAllowEmpty("EXPORT_DIR", "data/snapshots"),
			S3Enabled: getEnvAsBool("S3_ENABLED", false),
			S3Bucket:  getEnv("S3_BUCKET", ""),
			S3Region:  getEnv("S3_REGION", "us-east-1"),
			S3Prefix:  getEnv("S3_PREFIX", "snapshots/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Store.URL == "" {
		return fmt.Errorf("store URL is required")
	}

	u, err := url.Parse(c.Store.URL)
	if err != nil {
		return fmt.Errorf("invalid store URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("invalid store URL scheme: %q (must be postgres or postgresql)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("store URL host is required")
	}

	if c.Store.Key == "" {
		return fmt.Errorf("store key is required")
	}

	if c.Store.MaxConnections < 1 {
		return fmt.Errorf("store max connections must be at least 1")
	}

	if c.Store.MinConnections < 0 {
		return fmt.Errorf("store min connections cannot be negative")
	}

	if c.Store.MinConnections > c.Store.MaxConnections {
		return fmt.Errorf("store min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Export.S3Enabled {
		if c.Export.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Export.S3Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the store URL with the access key set as the
// connection password. A password already present in the URL is replaced.
func (c *StoreConfig) ConnectionString() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return c.URL
	}

	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.Key)

	return u.String()
}

// Redacted returns the store URL without credentials, for logging.
func (c *StoreConfig) Redacted() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return u.Redacted()
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty is getEnv, except that a variable set to "" stays empty.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
