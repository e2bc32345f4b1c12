// Package config provides configuration management for the movie server.
// It handles loading configuration from environment variables with sensible
// defaults and validates the configuration to ensure the application starts
// safely.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 5000)
//   - LOG_LEVEL: Logging level (default: info)
//   - ALLOWED_ORIGIN: CORS allowed origin (default: http://localhost:3000)
//
// Database Configuration:
//   - MONGODB_URI: MongoDB connection string (required)
//   - MONGODB_DB: MongoDB database name (default: movies)
//
// Upstream Configuration:
//   - TMDB_API_KEY: TMDB API key (required)
//   - TMDB_BASE_URL: TMDB API base URL (default: https://api.themoviedb.org/3)
//   - IMAGE_BASE_URL: image CDN prefix (default: https://image.tmdb.org/t/p/original)
//   - LIST_PAGE_SIZE: items enriched per list page (default: 10)
//   - SUBREQUEST_TIMEOUT: per-upstream-call timeout (default: 8s)
//
// Cache Configuration:
//   - TRENDING_CACHE_TTL: trending response staleness window (default: 1h)
//   - REDIS_ADDRESS: optional Redis address; empty keeps the cache local
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//
// Security Configuration:
//   - JWT_SECRET: JWT signing secret (required, minimum 32 characters)
//   - TOKEN_EXPIRY: bearer token lifetime (default: 168h, i.e. 7 days)
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"os"
)

// Config holds all configuration values for the movie server. All string
// fields correspond to environment variables that can be set to override
// the default values.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	Port          string // Server port number
	LogLevel      string // Logging level (debug, info, warn, error)
	AllowedOrigin string // CORS allowed origin

	// MongoDB configuration
	MongoURI      string // MongoDB connection string
	MongoDatabase string // MongoDB database name

	// Upstream metadata API configuration
	TMDBAPIKey        string // TMDB API key (required)
	TMDBBaseURL       string // TMDB API base URL
	ImageBaseURL      string // Prefix applied to upstream image paths
	ListPageSize      string // Items enriched per list page
	SubRequestTimeout string // Per-upstream-call timeout (e.g. "8s")

	// Response cache configuration
	TrendingCacheTTL string // Trending cache TTL (e.g. "1h")
	RedisAddress     string // Optional Redis address (host:port)
	RedisPassword    string // Redis authentication password
	RedisDB          string // Redis database number (0-15)

	// JWT authentication configuration
	JWTSecret   string // Secret key for JWT token signing (required)
	TokenExpiry string // Bearer token lifetime (e.g. "168h")
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding
// default value is used.
//
// This function does not validate the configuration - call Validate() on
// the returned Config to ensure all required values are properly set.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "5000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DB", "movies"),

		TMDBAPIKey:        getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:       getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		ImageBaseURL:      getEnv("IMAGE_BASE_URL", "https://image.tmdb.org/t/p/original"),
		ListPageSize:      getEnv("LIST_PAGE_SIZE", "10"),
		SubRequestTimeout: getEnv("SUBREQUEST_TIMEOUT", "8s"),

		TrendingCacheTTL: getEnv("TRENDING_CACHE_TTL", "1h"),
		RedisAddress:     getEnv("REDIS_ADDRESS", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnv("REDIS_DB", "0"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: getEnv("TOKEN_EXPIRY", "168h"),
	}
}

// getEnv retrieves an environment variable value or returns a default value
// if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate performs comprehensive validation on the configuration to ensure
// all required fields are present and all values are valid.
//
// The application should call this method after loading configuration and
// before starting to ensure safe operation.
func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB_API_KEY environment variable is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long for security")
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if !strings.HasPrefix(c.TMDBBaseURL, "http://") && !strings.HasPrefix(c.TMDBBaseURL, "https://") {
		return fmt.Errorf("TMDB_BASE_URL must be an http(s) URL")
	}

	if size, err := strconv.Atoi(c.ListPageSize); err != nil || size < 1 || size > 100 {
		return fmt.Errorf("LIST_PAGE_SIZE must be a number between 1 and 100")
	}

	if _, err := time.ParseDuration(c.SubRequestTimeout); err != nil {
		return fmt.Errorf("SUBREQUEST_TIMEOUT must be a valid duration (e.g., '8s')")
	}

	if _, err := time.ParseDuration(c.TrendingCacheTTL); err != nil {
		return fmt.Errorf("TRENDING_CACHE_TTL must be a valid duration (e.g., '1h')")
	}

	if _, err := time.ParseDuration(c.TokenExpiry); err != nil {
		return fmt.Errorf("TOKEN_EXPIRY must be a valid duration (e.g., '168h')")
	}

	if c.RedisAddress != "" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
	}

	return nil
}

// PageSize returns the validated list page size as an int.
func (c *Config) PageSize() int {
	size, err := strconv.Atoi(c.ListPageSize)
	if err != nil || size < 1 {
		return 10
	}
	return size
}

// SubRequestTimeoutDuration returns the per-upstream-call timeout.
func (c *Config) SubRequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.SubRequestTimeout)
	if err != nil {
		return 8 * time.Second
	}
	return d
}

// TrendingTTL returns the trending cache TTL.
func (c *Config) TrendingTTL() time.Duration {
	d, err := time.ParseDuration(c.TrendingCacheTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// TokenExpiryDuration returns the bearer token lifetime.
func (c *Config) TokenExpiryDuration() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}
