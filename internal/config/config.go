package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings contains configuration for the SharePoint REST client.
type Settings struct {
	AccessToken     string        // Required, bearer token for the SharePoint REST interface
	HTTPTimeout     time.Duration // HTTP client timeout, defaults to 60 seconds
	HTTPMaxBodySize int64         // Maximum allowed API response body size in bytes for non-file responses, defaults to 10MB
	LogLevel        string        // Log level (debug, info, warn, error), defaults to info
}

// LoadSettings loads configuration from environment variables and optional .env file.
// Required environment variables: SPO_ACCESS_TOKEN.
// Optional variables: HTTP_TIMEOUT, HTTP_MAX_BODY_SIZE, LOG_LEVEL.
func LoadSettings() (*Settings, error) {
	// If .env exists, try to load it
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	accessToken, err := getEnvRequired("SPO_ACCESS_TOKEN")
	if err != nil {
		return nil, err
	}

	httpTimeout := time.Duration(getEnvInt("HTTP_TIMEOUT", 60)) * time.Second
	httpMaxBodySize := int64(getEnvInt("HTTP_MAX_BODY_SIZE", 10*1024*1024)) // 10MB default
	logLevel := getEnv("LOG_LEVEL", "info")

	return &Settings{
		AccessToken:     accessToken,
		HTTPTimeout:     httpTimeout,
		HTTPMaxBodySize: httpMaxBodySize,
		LogLevel:        logLevel,
	}, nil
}

// get the env variable with a default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// get the env variable or raise an error
func getEnvRequired(key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s environment variable must be set", key)
}

// getEnvInt returns an integer env var, defaulting when unset/empty or invalid.
func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return i
	}
	return def
}
