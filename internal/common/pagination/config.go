// Package pagination provides the offset pagination model used by the post
// listing: zero-based page numbers, a fixed page size, and a has-more flag
// derived from the returned page instead of a count query.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage int // Default page number (0, the first page)
	PageSize    int // Items per page, fixed for all listing requests
	MaxPage     int // Upper bound on the requested page number
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=0, size=9, max page=10000.
func DefaultConfig() Config {
	return Config{
		DefaultPage: 0,
		PageSize:    9,
		MaxPage:     10000,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_PAGE_SIZE: Items per page
//   - PAGINATION_MAX_PAGE: Maximum page number accepted from clients
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.PageSize = getEnvAsInt("PAGINATION_PAGE_SIZE", cfg.PageSize)
	cfg.MaxPage = getEnvAsInt("PAGINATION_MAX_PAGE", cfg.MaxPage)
	return cfg
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}
