package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Server    ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Name          string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	RunMigrations bool
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	// CookieSecure marks the session cookie Secure; enable behind HTTPS.
	CookieSecure       bool
}

// RedisConfig holds the connection settings for the rate limiter backend
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// RateLimitConfig holds limits for anonymous endpoints
type RateLimitConfig struct {
	PublicRequestsPerMinute int
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	SampleRatio  float64
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	WebAppURI      string
	AllowedOrigins []string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Port, err = getIntWithDefault("DB_PORT", 5432); err != nil {
		return nil, err
	}
	cfg.Database.SSLMode = getEnvWithDefault("DB_SSLMODE", "disable")
	if cfg.Database.MaxOpenConns, err = getIntWithDefault("DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = getIntWithDefault("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Database.RunMigrations, err = getBoolWithDefault("DB_RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	ttl := getEnvWithDefault("JWT_TTL", "24h")
	if cfg.Auth.TokenTTL, err = time.ParseDuration(ttl); err != nil {
		return nil, fmt.Errorf("failed to parse JWT_TTL: %w", err)
	}
	cfg.Auth.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.Auth.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.Auth.GoogleRedirectURI = os.Getenv("GOOGLE_REDIRECT_URI")
	if cfg.Auth.CookieSecure, err = getBoolWithDefault("AUTH_COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	// Redis configuration
	if cfg.Redis.Enabled, err = getBoolWithDefault("REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = getIntWithDefault("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.RateLimit.PublicRequestsPerMinute, err = getIntWithDefault("PUBLIC_RATE_LIMIT_RPM", 60); err != nil {
		return nil, err
	}

	// Tracing configuration
	if cfg.Tracing.Enabled, err = getBoolWithDefault("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	cfg.Tracing.ServiceName = getEnvWithDefault("OTEL_SERVICE_NAME", "forms-server")
	cfg.Tracing.Environment = getEnvWithDefault("GO_ENV", "development")
	cfg.Tracing.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	ratio := getEnvWithDefault("OTEL_SAMPLER_RATIO", "0.1")
	if cfg.Tracing.SampleRatio, err = strconv.ParseFloat(ratio, 64); err != nil {
		return nil, fmt.Errorf("failed to parse OTEL_SAMPLER_RATIO: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	cfg.Server.AllowedOrigins = splitList(getEnvWithDefault("ALLOWED_ORIGINS", cfg.Server.WebAppURI))

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// GoogleEnabled reports whether Google sign-in is configured
func (c *AuthConfig) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
