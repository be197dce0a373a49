package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	SEC     SECConfig
	Finnhub FinnhubConfig

	// Upcoming filings defaults
	Upcoming UpcomingConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// SECConfig holds SEC EDGAR API configuration.
// SEC requires a descriptive User-Agent with contact info and caps
// automated access at 10 requests per second.
type SECConfig struct {
	BaseURL        string
	UserAgent      string
	RequestsPerSec int
}

// FinnhubConfig holds Finnhub API configuration (earnings calendar,
// quotes, company news). Free tier allows 60 calls per minute.
type FinnhubConfig struct {
	APIKey          string
	BaseURL         string
	RateLimitPerMin int
}

// UpcomingConfig holds defaults for the upcoming-filings endpoint
type UpcomingConfig struct {
	DefaultDaysAhead int
	DefaultLimit     int
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External APIs
		SEC: SECConfig{
			BaseURL:        getEnv("SEC_BASE_URL", "https://data.sec.gov"),
			UserAgent:      getEnv("SEC_USER_AGENT", "10KAY admin@10kay.io"),
			RequestsPerSec: getEnvAsInt("SEC_RATE_LIMIT_RPS", 10),
		},

		Finnhub: FinnhubConfig{
			APIKey:          getEnv("FINNHUB_API_KEY", ""),
			BaseURL:         getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			RateLimitPerMin: getEnvAsInt("FINNHUB_RATE_LIMIT_PER_MIN", 60),
		},

		Upcoming: UpcomingConfig{
			DefaultDaysAhead: getEnvAsInt("UPCOMING_DEFAULT_DAYS", 60),
			DefaultLimit:     getEnvAsInt("UPCOMING_DEFAULT_LIMIT", 10),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Upcoming.DefaultDaysAhead <= 0 {
		return fmt.Errorf("UPCOMING_DEFAULT_DAYS must be positive")
	}

	if c.Upcoming.DefaultLimit <= 0 {
		return fmt.Errorf("UPCOMING_DEFAULT_LIMIT must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
