package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=astropulse
//	NASA_API_KEY=DEMO_KEY
//	AUTH_JWT_SECRET=change-me
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	NASA      NASAConfig
	NEO       NEOConfig
	MarsCache CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
	// RequestTimeout bounds the context of every API request.
	RequestTimeout time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// NASAConfig configures the upstream clients. EONET and open-notify never
// receive the API key.
type NASAConfig struct {
	APIKey            string
	BaseURL           string
	EONETBaseURL      string
	OpenNotifyBaseURL string
	Timeout           time.Duration
	MinInterval       time.Duration
	MaxRetries        int
}

// NEOConfig tunes the feed fan-out of the summary endpoint.
type NEOConfig struct {
	Parallel     int
	MaxRangeDays int
}

// CacheConfig bounds an in-process cache by size and age.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AuthConfig holds the HS256 secret shared with the identity provider.
type AuthConfig struct {
	JWTSecret string
}

// RateLimitConfig is the per client IP request budget.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		NASA: NASAConfig{
			APIKey:            viper.GetString("NASA_API_KEY"),
			BaseURL:           viper.GetString("NASA_BASE_URL"),
			EONETBaseURL:      viper.GetString("EONET_BASE_URL"),
			OpenNotifyBaseURL: viper.GetString("OPEN_NOTIFY_BASE_URL"),
			Timeout:           viper.GetDuration("NASA_TIMEOUT"),
			MinInterval:       viper.GetDuration("NASA_MIN_INTERVAL"),
			MaxRetries:        viper.GetInt("NASA_MAX_RETRIES"),
		},
		NEO: NEOConfig{
			Parallel:     viper.GetInt("NEO_PARALLEL"),
			MaxRangeDays: viper.GetInt("NEO_MAX_RANGE_DAYS"),
		},
		MarsCache: CacheConfig{
			Size: viper.GetInt("MARS_CACHE_SIZE"),
			TTL:  viper.GetDuration("MARS_CACHE_TTL"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_RPM"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "60s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "astropulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("NASA_API_KEY", "DEMO_KEY")
	viper.SetDefault("NASA_BASE_URL", "https://api.nasa.gov")
	viper.SetDefault("EONET_BASE_URL", "https://eonet.gsfc.nasa.gov/api/v3")
	viper.SetDefault("OPEN_NOTIFY_BASE_URL", "http://api.open-notify.org")
	viper.SetDefault("NASA_TIMEOUT", "15s")
	viper.SetDefault("NASA_MIN_INTERVAL", "250ms")
	viper.SetDefault("NASA_MAX_RETRIES", 2)

	viper.SetDefault("NEO_PARALLEL", 4)
	viper.SetDefault("NEO_MAX_RANGE_DAYS", 366)

	viper.SetDefault("MARS_CACHE_SIZE", 256)
	viper.SetDefault("MARS_CACHE_TTL", "30m")

	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("RATE_LIMIT_RPM", 60)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.NASA.APIKey == "" {
		missing = append(missing, "NASA_API_KEY")
	}
	if cfg.NASA.BaseURL == "" {
		missing = append(missing, "NASA_BASE_URL")
	}
	return missing
}
