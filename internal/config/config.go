// Package config loads application configuration from .env files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by the CLI when it exists.
const DefaultEnvFile = ".env"

// Config holds the application configuration.
type Config struct {
	GitHubToken            string
	APIURL                 string
	BatchSize              int
	BatchPause             time.Duration
	Timeout                time.Duration
	HTTPCache              bool
	WaitSecondaryRateLimit bool
}

// HasToken reports whether a GitHub token was configured.
func (c *Config) HasToken() bool {
	return c.GitHubToken != ""
}

// Load reads the given .env files, skipping the ones that do not exist, and
// then builds a Config from the environment. Variables already present in the
// environment take precedence over .env values.
//
// Optional variables with defaults: GITHUB_TOKEN (empty), GITHUB_API_URL
// (https://api.github.com/), GITHUB_DASHBOARD_BATCH_SIZE (5),
// GITHUB_DASHBOARD_BATCH_PAUSE (500ms), GITHUB_DASHBOARD_TIMEOUT (30s),
// GITHUB_DASHBOARD_HTTP_CACHE (true), GITHUB_DASHBOARD_WAIT_SECONDARY_RATE_LIMIT (false).
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	apiURL := getEnv("GITHUB_API_URL", "https://api.github.com/")
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	batchSize, err := getEnvAsInt("GITHUB_DASHBOARD_BATCH_SIZE", 5)
	if err != nil {
		return nil, err
	}
	if err := ValidateBatchSize("GITHUB_DASHBOARD_BATCH_SIZE", batchSize); err != nil {
		return nil, err
	}

	batchPause, err := getEnvAsDuration("GITHUB_DASHBOARD_BATCH_PAUSE", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if err := ValidateBatchPause("GITHUB_DASHBOARD_BATCH_PAUSE", batchPause); err != nil {
		return nil, err
	}

	timeout, err := getEnvAsDuration("GITHUB_DASHBOARD_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cache, err := getEnvAsBool("GITHUB_DASHBOARD_HTTP_CACHE", true)
	if err != nil {
		return nil, err
	}

	wait, err := getEnvAsBool("GITHUB_DASHBOARD_WAIT_SECONDARY_RATE_LIMIT", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		GitHubToken:            os.Getenv("GITHUB_TOKEN"),
		APIURL:                 apiURL,
		BatchSize:              batchSize,
		BatchPause:             batchPause,
		Timeout:                timeout,
		HTTPCache:              cache,
		WaitSecondaryRateLimit: wait,
	}, nil
}

// ValidateBatchSize rejects batch sizes below 1. source names the setting in the error.
func ValidateBatchSize(source string, n int) error {
	if n < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", source, n)
	}
	return nil
}

// ValidateBatchPause rejects negative pauses. source names the setting in the error.
func ValidateBatchPause(source string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%s must not be negative, got %s", source, d)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
