package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Cart     CartConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds MongoDB-related configuration.
type DatabaseConfig struct {
	URI            string
	Database       string
	ConnectTimeout int // seconds
	MaxPoolSize    int
	MinPoolSize    int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds token and password configuration.
type AuthConfig struct {
	JWTSecret          string
	TokenExpiryMinutes int
}

// CartConfig holds cart lifecycle configuration.
type CartConfig struct {
	TTLDays int
}

// Load loads configuration from environment variables. A local .env file is
// applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DATABASE", "pourpal"),
			ConnectTimeout: getEnvAsInt("MONGO_CONNECT_TIMEOUT", 10),
			MaxPoolSize:    getEnvAsInt("MONGO_MAX_POOL_SIZE", 100),
			MinPoolSize:    getEnvAsInt("MONGO_MIN_POOL_SIZE", 10),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			TokenExpiryMinutes: getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 60),
		},
		Cart: CartConfig{
			TTLDays: getEnvAsInt("CART_TTL_DAYS", 7),
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

	if c.Database.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}

	if c.Database.MaxPoolSize < 1 {
		return fmt.Errorf("mongo max pool size must be at least 1")
	}

	if c.Database.MinPoolSize < 1 {
		return fmt.Errorf("mongo min pool size must be at least 1")
	}

	if c.Database.MinPoolSize > c.Database.MaxPoolSize {
		return fmt.Errorf("mongo min pool size cannot exceed max pool size")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenExpiryMinutes < 1 {
		return fmt.Errorf("token expiry must be at least 1 minute")
	}

	if c.Cart.TTLDays < 1 {
		return fmt.Errorf("cart TTL must be at least 1 day")
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

	return nil
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

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
