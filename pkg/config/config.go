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
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis (optional bundle cache shared across processes)
	Redis RedisConfig

	// External data sources
	Yahoo YahooConfig
	NSE   NSEConfig

	// Screener
	Screener ScreenerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// YahooConfig holds Yahoo Finance API configuration.
type YahooConfig struct {
	BaseURL   string
	UserAgent string
	// Range of daily history requested per ticker, e.g. "6mo".
	ChartRange string
	// Upstream requests allowed per second across the process.
	RequestsPerSecond float64
}

// NSEConfig holds NSE index-constituents source configuration.
type NSEConfig struct {
	ConstituentsURL string
	FallbackURL     string
	TickersFile     string
}

// ScreenerConfig holds screening run configuration.
type ScreenerConfig struct {
	// Minimum interval between upstream fetches. Yahoo throttles
	// aggressively, so this stays >= 1.1s by default.
	FetchInterval time.Duration
	// How long a fetched bundle stays valid before a re-fetch.
	BundleTTL time.Duration
	ExportDir string
	ChartDir  string
	// Optional YAML file with filter defaults.
	StrategyFile string
}

// Load reads configuration from environment variables.
// SSOT: this is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8086"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Yahoo: YahooConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			UserAgent:         getEnv("YAHOO_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
			ChartRange:        getEnv("YAHOO_CHART_RANGE", "6mo"),
			RequestsPerSecond: getEnvAsFloat("YAHOO_REQUESTS_PER_SECOND", 2.0),
		},

		NSE: NSEConfig{
			ConstituentsURL: getEnv("NSE_CONSTITUENTS_URL", "https://archives.nseindia.com/content/indices/ind_nifty50list.csv"),
			FallbackURL:     getEnv("NSE_FALLBACK_URL", "https://en.wikipedia.org/wiki/NIFTY_50"),
			TickersFile:     getEnv("NSE_TICKERS_FILE", "tickers.csv"),
		},

		Screener: ScreenerConfig{
			FetchInterval: getEnvAsDuration("SCREENER_FETCH_INTERVAL", "1100ms"),
			BundleTTL:     getEnvAsDuration("SCREENER_BUNDLE_TTL", "1h"),
			ExportDir:     getEnv("SCREENER_EXPORT_DIR", "exports"),
			ChartDir:      getEnv("SCREENER_CHART_DIR", "screenshots"),
			StrategyFile:  getEnv("SCREENER_STRATEGY_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screener.FetchInterval < 0 {
		return fmt.Errorf("SCREENER_FETCH_INTERVAL must not be negative")
	}

	if c.Screener.BundleTTL <= 0 {
		return fmt.Errorf("SCREENER_BUNDLE_TTL must be positive")
	}

	if c.Yahoo.RequestsPerSecond <= 0 {
		return fmt.Errorf("YAHOO_REQUESTS_PER_SECOND must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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
