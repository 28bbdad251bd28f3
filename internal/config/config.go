package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvironmentProduction selects JSON logging and gin release mode
const EnvironmentProduction = "production"

// Config represents the application configuration
type Config struct {
	// Environment is the deployment mode (development, production, test)
	Environment string
	// ServiceName is reported by the health endpoint
	ServiceName string
	// API contains API server configuration
	API APIConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Log contains logging configuration
	Log LogConfig

	// Rate Limiting Configuration
	RateLimit struct {
		Enabled  bool
		Requests int // Number of requests allowed per window
		Window   int // Time window in seconds
		Burst    int // Maximum burst size
	}
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// URL is a full connection string; when set it takes precedence over the discrete fields
	URL string
	// Host is the database server hostname
	Host string
	// Port is the database server port
	Port int
	// User is the database username
	User string
	// Password is the database password
	Password string
	// DBName is the database name
	DBName string
	// SSLMode is the SSL mode for the database connection
	SSLMode string
	// MaxOpenConns caps the connection pool
	MaxOpenConns int
	// MaxIdleConns caps idle connections kept in the pool
	MaxIdleConns int
	// RunMigrations applies pending migrations at startup
	RunMigrations bool
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// LogConfig contains logging settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string
	// JSON selects structured output instead of the console writer
	JSON bool
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// DSN returns the connection string handed to the postgres driver
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.Environment = strings.ToLower(getEnvOrDefault("ENVIRONMENT", "development"))
	c.ServiceName = getEnvOrDefault("SERVICE_NAME", "branch-loan-api")

	c.API = APIConfig{
		Port:            getEnvOrDefault("API_PORT", "8080"),
		ShutdownTimeout: getEnvAsDuration("API_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
	c.Database = DatabaseConfig{
		URL:            os.Getenv("DATABASE_URL"),
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "branch_loans"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:   getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		RunMigrations:  getEnvAsBool("DB_RUN_MIGRATIONS", true),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
	}
	c.Log = LogConfig{
		Level: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		JSON:  c.IsProduction(),
	}

	// Load rate limit configuration
	c.RateLimit.Enabled = getEnvAsBool("RATE_LIMIT_ENABLED", true)
	c.RateLimit.Requests = getEnvAsInt("RATE_LIMIT_REQUESTS", 1000)
	c.RateLimit.Window = getEnvAsInt("RATE_LIMIT_WINDOW", 60)
	c.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 50)

	return c.validate()
}

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.API.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid API_PORT %q", c.API.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsBool retrieves an environment variable and converts it to a boolean
func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
